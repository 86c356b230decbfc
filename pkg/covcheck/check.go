// Package covcheck gates a numeric value in a JSON coverage report, so a
// pipeline can fail when coverage produced by an earlier test check drops
// below a threshold.
package covcheck

import (
	"context"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/verneri/parity/pkg/check"
)

// FileSystem abstracts file reads for testing.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
}

// OSFileSystem reads from the real filesystem.
type OSFileSystem struct{}

// ReadFile reads the named file.
func (OSFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name) //nolint:gosec // intentional: reading the declared report file
}

// Check verifies that a value in a JSON report meets a minimum.
type Check struct {
	Name string     // check name as declared in the pipeline
	File string     // path to the JSON report
	Path string     // gjson path to the numeric value (dot notation)
	Min  float64    // minimum accepted value
	FS   FileSystem // injected for testing
}

// Run executes the coverage check.
func (c *Check) Run(_ context.Context) check.Result {
	result := check.Result{
		Name: fmt.Sprintf("check: %s", c.Name),
	}

	content, err := c.FS.ReadFile(c.File)
	if err != nil {
		return result.Failf("failed to read report: %v", err)
	}

	jsonStr := string(content)
	if !gjson.Valid(jsonStr) {
		return result.Fail("invalid JSON report", fmt.Errorf("invalid JSON syntax in %s", c.File))
	}

	value := gjson.Get(jsonStr, c.Path)
	if !value.Exists() {
		return result.Failf("path %q not found in %s", c.Path, c.File)
	}
	if value.Type != gjson.Number {
		return result.Failf("value at %q is not a number: %s", c.Path, value.String())
	}

	got := value.Float()
	result.AddDetailf("%s: %.1f", c.Path, got)

	if got < c.Min {
		return result.Failf("value %.1f below minimum %.1f", got, c.Min)
	}

	result.Status = check.StatusOK
	return result
}
