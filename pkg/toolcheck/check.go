// Package toolcheck verifies that the external tools a pipeline depends on
// (container builder, orchestrator, make) are installed and usable before
// any stage runs.
package toolcheck

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/verneri/parity/pkg/check"
	"github.com/verneri/parity/pkg/shell"
	"github.com/verneri/parity/pkg/version"
)

// DefaultTimeout bounds the version probe so a hung tool cannot stall the
// whole run before it starts.
const DefaultTimeout = 30 * time.Second

// Check verifies that a required tool exists and can run.
type Check struct {
	Tool       string           // executable name, e.g. "docker"
	ProbeArgs  []string         // args proving the tool works (default: --version)
	MinVersion *version.Version // minimum version required (inclusive)
	Timeout    time.Duration    // timeout for the probe (default: 30s)
	Runner     shell.Runner     // injected for testing
}

// Run executes the tool check.
func (c *Check) Run(ctx context.Context) check.Result {
	result := check.Result{
		Name: fmt.Sprintf("tool: %s", c.Tool),
	}

	path, err := c.Runner.LookPath(c.Tool)
	if err != nil {
		return result.Failf("not found in PATH: %v", err)
	}

	result.AddDetailf("path: %s", path)

	args := c.ProbeArgs
	if len(args) == 0 {
		args = []string{"--version"}
	}

	timeout := c.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stdout, stderr, err := c.Runner.Capture(ctx, c.Tool, args...)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return result.Failf("probe timed out after %s", timeout)
		}
		result.AddDetailf("probe failed: %v", err)
		if stderr != "" {
			result.AddDetailf("stderr: %s", strings.TrimSpace(stderr))
		}
		result.Status = check.StatusFail
		result.Err = err
		return result
	}

	banner := strings.TrimSpace(stdout)
	if banner == "" {
		banner = strings.TrimSpace(stderr)
	}

	if c.MinVersion == nil {
		if banner != "" {
			result.AddDetailf("version: %s", firstLine(banner))
		}
		result.Status = check.StatusOK
		return result
	}

	v, err := version.Extract(banner)
	if err != nil {
		return result.Failf("could not parse version from probe output: %v", err)
	}

	result.AddDetailf("version: %s", v)

	if !v.GreaterThanOrEqual(*c.MinVersion) {
		return result.Failf("version %s < minimum %s", v, c.MinVersion)
	}

	result.Status = check.StatusOK
	return result
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
