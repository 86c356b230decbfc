// Package runner executes a pipeline strictly sequentially: prerequisite
// probes, fatal setup stages, supporting services, then the ordered check
// list with pass/fail accumulation. Prerequisite and setup failures abort
// the run immediately; check failures are recorded and the run continues,
// so one pass surfaces every failing check at once.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/verneri/parity/pkg/check"
	"github.com/verneri/parity/pkg/output"
	"github.com/verneri/parity/pkg/pipeline"
	"github.com/verneri/parity/pkg/readycheck"
	"github.com/verneri/parity/pkg/shell"
	"github.com/verneri/parity/pkg/toolcheck"
	"github.com/verneri/parity/pkg/version"
)

// Process exit codes. A fatal environment error is a different class than
// failed checks and gets its own code.
const (
	ExitOK           = 0
	ExitChecksFailed = 1
	ExitFatal        = 2
)

// FatalError reports an environment failure (missing tool, failed build)
// that aborts the run before any further stage. It is structurally
// distinct from a recorded check failure.
type FatalError struct {
	Phase   string // "prerequisites", "services", or the setup stage name
	Command string // offending command line, if any
	Err     error
}

// Error implements the error interface.
func (e *FatalError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("%s: command %q failed: %v", e.Phase, e.Command, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Phase, e.Err)
}

// Unwrap returns the underlying error.
func (e *FatalError) Unwrap() error { return e.Err }

// Runner executes pipelines.
type Runner struct {
	Shell   shell.Runner
	Printer *output.Printer
	Logger  zerolog.Logger

	// Dialer is used for service readiness probes. Nil means real network
	// dialing.
	Dialer readycheck.Dialer
}

// Run executes the full pipeline and returns the summary of recorded
// checks. A *FatalError return means the environment broke before the
// checks ran and nothing was recorded.
func (r *Runner) Run(ctx context.Context, p *pipeline.Pipeline) (Summary, error) {
	if err := r.CheckPrerequisites(ctx, p.Prerequisites); err != nil {
		return Summary{}, err
	}

	for i := range p.Setup {
		if err := r.RunStage(ctx, &p.Setup[i]); err != nil {
			return Summary{}, err
		}
	}

	if p.Services != nil && len(p.Services.Up) > 0 {
		started, err := r.startServices(ctx, p.Services)
		if started {
			// Teardown must run on every exit path once anything is up,
			// or a fatal readiness failure leaks running services.
			defer r.stopServices(ctx, p.Services.Down)
		}
		if err != nil {
			return Summary{}, err
		}
	}

	results := r.RunChecks(ctx, p.Checks)

	summary := Summarize(results)
	r.Printer.PrintSummary(summary.Passed(), summary.Failed())
	return summary, nil
}

// CheckPrerequisites probes every required tool. The first unusable tool is
// fatal: no later check can succeed without it.
func (r *Runner) CheckPrerequisites(ctx context.Context, prereqs []pipeline.Prerequisite) error {
	if len(prereqs) == 0 {
		return nil
	}

	r.Printer.StageHeader("prerequisites")
	for _, pre := range prereqs {
		c := &toolcheck.Check{
			Tool:      pre.Tool,
			ProbeArgs: pre.Probe,
			Runner:    r.Shell,
		}

		min, err := version.ParseOptional(pre.Min)
		if err != nil {
			return r.fatal(&FatalError{
				Phase: "prerequisites",
				Err:   fmt.Errorf("invalid min version for %s: %w", pre.Tool, err),
			})
		}
		c.MinVersion = min

		start := time.Now()
		result := c.Run(ctx)
		r.Logger.Debug().
			Str("tool", pre.Tool).
			Dur("duration", time.Since(start)).
			Bool("ok", result.OK()).
			Msg("prerequisite probed")

		r.Printer.PrintResult(result)
		if !result.OK() {
			return r.fatal(&FatalError{
				Phase: "prerequisites",
				Err:   fmt.Errorf("required tool %s is not usable", pre.Tool),
			})
		}
	}
	return nil
}

// RunStage executes a setup stage's commands in order. Any failure is
// fatal: a broken build invalidates every downstream check.
func (r *Runner) RunStage(ctx context.Context, stage *pipeline.Stage) error {
	r.Printer.StageHeader(stage.Name)
	for _, command := range stage.Commands {
		r.Logger.Debug().
			Str("stage", stage.Name).
			Str("command", command).
			Msg("running setup command")

		start := time.Now()
		if err := r.Shell.Stream(ctx, command); err != nil {
			return r.fatal(&FatalError{Phase: stage.Name, Command: command, Err: err})
		}

		r.Logger.Debug().
			Str("stage", stage.Name).
			Str("command", command).
			Dur("duration", time.Since(start)).
			Msg("setup command finished")
	}
	return nil
}

// RunChecks executes every declared check in order. Each check produces
// exactly one result; failures are recorded, never propagated.
func (r *Runner) RunChecks(ctx context.Context, checks []pipeline.Check) []check.Result {
	r.Printer.StageHeader("checks")
	results := make([]check.Result, 0, len(checks))
	for i := range checks {
		results = append(results, r.RunCheck(ctx, &checks[i]))
	}
	return results
}

// RunCheck executes a single declared check and returns its result.
func (r *Runner) RunCheck(ctx context.Context, c *pipeline.Check) check.Result {
	r.Printer.Running(c.Name)

	start := time.Now()
	result := r.checker(c).Run(ctx)
	r.Logger.Debug().
		Str("check", c.Name).
		Dur("duration", time.Since(start)).
		Bool("ok", result.OK()).
		Msg("check finished")

	r.Printer.PrintResult(result)
	return result
}

// startServices runs the Up commands and readiness probes. The started
// return reports whether any Up command succeeded: those services need
// teardown even when a later command or readiness probe fails.
func (r *Runner) startServices(ctx context.Context, services *pipeline.Services) (started bool, err error) {
	r.Printer.StageHeader("services")
	for _, command := range services.Up {
		r.Logger.Debug().Str("command", command).Msg("starting service")
		if err := r.Shell.Stream(ctx, command); err != nil {
			return started, r.fatal(&FatalError{Phase: "services", Command: command, Err: err})
		}
		started = true
	}

	dialer := r.Dialer
	if dialer == nil {
		dialer = &readycheck.RealDialer{}
	}
	for _, addr := range services.Ready {
		c := &readycheck.Check{Address: addr, Dialer: dialer}
		result := c.Run(ctx)
		r.Printer.PrintResult(result)
		if !result.OK() {
			return started, r.fatal(&FatalError{
				Phase: "services",
				Err:   fmt.Errorf("service at %s never became ready", addr),
			})
		}
	}
	return started, nil
}

// stopServices is best-effort teardown: failures are logged, never fatal,
// and never recorded as check results.
func (r *Runner) stopServices(ctx context.Context, down []string) {
	for _, command := range down {
		r.Logger.Debug().Str("command", command).Msg("stopping service")
		if err := r.Shell.Stream(ctx, command); err != nil {
			r.Logger.Warn().Str("command", command).Err(err).Msg("service teardown failed")
		}
	}
}

// fatal prints the environment-broken message and returns err unchanged.
func (r *Runner) fatal(err *FatalError) error {
	r.Printer.Fatal(err.Phase, err.Command, err.Err)
	r.Logger.Error().Str("phase", err.Phase).Err(err.Err).Msg("run aborted")
	return err
}
