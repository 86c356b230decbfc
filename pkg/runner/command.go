package runner

import (
	"context"
	"fmt"

	"github.com/verneri/parity/pkg/check"
	"github.com/verneri/parity/pkg/covcheck"
	"github.com/verneri/parity/pkg/pipeline"
	"github.com/verneri/parity/pkg/shell"
)

// checker maps a declared check to its implementation.
func (r *Runner) checker(c *pipeline.Check) check.Checker {
	if c.Coverage != nil {
		return &covcheck.Check{
			Name: c.Name,
			File: c.Coverage.File,
			Path: c.Coverage.Path,
			Min:  c.Coverage.Min,
			FS:   covcheck.OSFileSystem{},
		}
	}
	return &commandCheck{name: c.Name, command: c.Run, shell: r.Shell}
}

// commandCheck runs an opaque external command line. Only the exit status
// matters; the command's output streams straight to the user.
type commandCheck struct {
	name    string
	command string
	shell   shell.Runner
}

// Run executes the command check.
func (c *commandCheck) Run(ctx context.Context) check.Result {
	result := check.Result{
		Name: fmt.Sprintf("check: %s", c.name),
	}

	if err := c.shell.Stream(ctx, c.command); err != nil {
		if code := shell.ExitCode(err); code > 0 {
			return result.Failf("exit status %d", code)
		}
		return result.Failf("failed to run: %v", err)
	}

	result.Status = check.StatusOK
	return result
}
