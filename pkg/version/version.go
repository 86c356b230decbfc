// Package version parses version numbers out of tool banner output.
// Tools print versions in loose formats ("Docker version 27.3.1, build
// 41ca978", "v2.29.2"), so parsing is deliberately lenient: the first
// major[.minor[.patch]] group found wins and missing components are zero.
package version

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Version represents a version with major, minor, patch components.
type Version struct {
	Major int
	Minor int
	Patch int
}

// String returns the version as a string.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// versionRegex matches version patterns like 1.2.3, v1.2, 18, etc.
var versionRegex = regexp.MustCompile(`v?(\d+)(?:\.(\d+))?(?:\.(\d+))?`)

// Parse parses a bare version string into a Version. Unlike Extract, the
// whole string must be a version.
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, fmt.Errorf("empty version string")
	}

	matches := versionRegex.FindStringSubmatch(s)
	if matches == nil || matches[0] != s {
		return Version{}, fmt.Errorf("invalid version format: %q", s)
	}

	return fromMatches(matches), nil
}

// ParseOptional parses a version string, returning nil for the empty string.
// Useful when plumbing optional version constraints from flags or YAML.
func ParseOptional(s string) (*Version, error) {
	if s == "" {
		return nil, nil
	}
	v, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Extract finds and parses the first version number in a string, typically
// a tool's --version banner.
func Extract(s string) (Version, error) {
	matches := versionRegex.FindStringSubmatch(s)
	if matches == nil {
		return Version{}, fmt.Errorf("no version found in: %q", s)
	}
	return fromMatches(matches), nil
}

func fromMatches(matches []string) Version {
	major, _ := strconv.Atoi(matches[1])
	var minor, patch int
	if matches[2] != "" {
		minor, _ = strconv.Atoi(matches[2])
	}
	if matches[3] != "" {
		patch, _ = strconv.Atoi(matches[3])
	}
	return Version{Major: major, Minor: minor, Patch: patch}
}

// Compare returns -1 if v < other, 0 if v == other, 1 if v > other.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		if v.Major < other.Major {
			return -1
		}
		return 1
	}
	if v.Minor != other.Minor {
		if v.Minor < other.Minor {
			return -1
		}
		return 1
	}
	if v.Patch != other.Patch {
		if v.Patch < other.Patch {
			return -1
		}
		return 1
	}
	return 0
}

// LessThan returns true if v < other.
func (v Version) LessThan(other Version) bool {
	return v.Compare(other) < 0
}

// GreaterThanOrEqual returns true if v >= other.
func (v Version) GreaterThanOrEqual(other Version) bool {
	return v.Compare(other) >= 0
}
