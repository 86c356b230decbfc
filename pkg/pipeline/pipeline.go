// Package pipeline defines the .parity.yaml file format: the tools a
// repository's CI depends on, the setup stages that prepare the
// environment, and the ordered list of named checks to run.
package pipeline

import (
	"fmt"
	"net"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/verneri/parity/pkg/version"
)

// Prerequisite names an external tool that must be usable before any
// stage runs.
type Prerequisite struct {
	Tool  string   `yaml:"tool"`
	Probe []string `yaml:"probe,omitempty"` // args proving the tool works (default: --version)
	Min   string   `yaml:"min,omitempty"`   // minimum version, inclusive
}

// Stage is a named group of setup commands run in order before any check,
// e.g. building images. A stage command failing invalidates every
// downstream check.
type Stage struct {
	Name     string   `yaml:"name"`
	Commands []string `yaml:"commands"`
}

// Services holds orchestrator commands for supporting services (e.g. a
// storage emulator): Up runs before the checks, Down runs best-effort
// after them. Ready lists host:port addresses the runner waits on after
// Up, since orchestrators return before their services accept connections.
type Services struct {
	Up    []string `yaml:"up,omitempty"`
	Down  []string `yaml:"down,omitempty"`
	Ready []string `yaml:"ready,omitempty"`
}

// Coverage gates a numeric value in a JSON report against a minimum.
type Coverage struct {
	File string  `yaml:"file"`
	Path string  `yaml:"path"` // gjson path, e.g. "totals.percent_covered"
	Min  float64 `yaml:"min"`
}

// Check is a single named validation. Exactly one of Run and Coverage must
// be set: Run is an opaque command line whose exit status is the verdict,
// Coverage reads a JSON report instead of running a command.
type Check struct {
	Name     string    `yaml:"name"`
	Run      string    `yaml:"run,omitempty"`
	Coverage *Coverage `yaml:"coverage,omitempty"`
}

// Pipeline is a parsed .parity.yaml.
type Pipeline struct {
	Name          string         `yaml:"name"`
	Prerequisites []Prerequisite `yaml:"prerequisites,omitempty"`
	Setup         []Stage        `yaml:"setup,omitempty"`
	Services      *Services      `yaml:"services,omitempty"`
	Checks        []Check        `yaml:"checks"`
}

// Parse parses YAML content into a validated Pipeline.
func Parse(data []byte) (*Pipeline, error) {
	var p Pipeline
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse pipeline: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load reads and parses a pipeline file.
func Load(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path) //nolint:gosec // intentional: reading the pipeline file
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline file: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Validate checks structural rules the runner depends on: every check has a
// unique non-empty name and exactly one implementation, every stage has
// commands, and version constraints parse.
func (p *Pipeline) Validate() error {
	if len(p.Checks) == 0 {
		return fmt.Errorf("pipeline declares no checks")
	}

	for _, pre := range p.Prerequisites {
		if pre.Tool == "" {
			return fmt.Errorf("prerequisite with empty tool name")
		}
		if _, err := version.ParseOptional(pre.Min); err != nil {
			return fmt.Errorf("prerequisite %s: invalid min version: %w", pre.Tool, err)
		}
	}

	if p.Services != nil {
		for _, addr := range p.Services.Ready {
			if _, _, err := net.SplitHostPort(addr); err != nil {
				return fmt.Errorf("services: invalid ready address %q: %w", addr, err)
			}
		}
	}

	for _, stage := range p.Setup {
		if stage.Name == "" {
			return fmt.Errorf("setup stage with empty name")
		}
		if len(stage.Commands) == 0 {
			return fmt.Errorf("setup stage %s has no commands", stage.Name)
		}
	}

	seen := make(map[string]bool, len(p.Checks))
	for _, c := range p.Checks {
		if c.Name == "" {
			return fmt.Errorf("check with empty name")
		}
		if seen[c.Name] {
			return fmt.Errorf("duplicate check name %q", c.Name)
		}
		seen[c.Name] = true

		hasRun := c.Run != ""
		hasCoverage := c.Coverage != nil
		if hasRun == hasCoverage {
			return fmt.Errorf("check %s: exactly one of run and coverage must be set", c.Name)
		}
		if hasCoverage && (c.Coverage.File == "" || c.Coverage.Path == "") {
			return fmt.Errorf("check %s: coverage needs both file and path", c.Name)
		}
	}

	return nil
}

// FindCheck returns the declared check with the given name.
func (p *Pipeline) FindCheck(name string) (*Check, bool) {
	for i := range p.Checks {
		if p.Checks[i].Name == name {
			return &p.Checks[i], true
		}
	}
	return nil, false
}
