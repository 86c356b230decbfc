// Package shell abstracts external command execution so the runner and
// individual checks can be tested without spawning real processes.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
)

// Runner abstracts command execution for testability.
type Runner interface {
	// LookPath searches for an executable in PATH.
	LookPath(file string) (string, error)
	// Capture executes a command and returns its buffered output.
	Capture(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)
	// Stream executes a shell command line with stdout and stderr attached
	// to the current process, so a human sees output as it happens.
	Stream(ctx context.Context, command string) error
}

// RealRunner implements Runner using actual OS commands.
type RealRunner struct{}

// LookPath searches for an executable in PATH.
func (r *RealRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Capture executes a command and returns its output.
func (r *RealRunner) Capture(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err := cmd.Run()
	return outBuf.String(), errBuf.String(), err
}

// Stream runs a command line through the shell (sh -c "cmd") with the
// process's own standard streams.
func (r *RealRunner) Stream(ctx context.Context, command string) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	return cmd.Run()
}

// ExitCode returns the exit status carried by err: 0 for nil, the process
// exit code for *exec.ExitError, and -1 when the command never ran.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// MockRunner is a test double for Runner.
type MockRunner struct {
	LookPathFunc func(file string) (string, error)
	CaptureFunc  func(name string, args ...string) (string, string, error)
	StreamFunc   func(command string) error

	// Streamed records every command line passed to Stream, in call order.
	Streamed []string
}

// LookPath calls the mock function.
func (m *MockRunner) LookPath(file string) (string, error) {
	return m.LookPathFunc(file)
}

// Capture calls the mock function.
func (m *MockRunner) Capture(_ context.Context, name string, args ...string) (string, string, error) {
	return m.CaptureFunc(name, args...)
}

// Stream records the command and calls the mock function if set.
func (m *MockRunner) Stream(_ context.Context, command string) error {
	m.Streamed = append(m.Streamed, command)
	if m.StreamFunc == nil {
		return nil
	}
	return m.StreamFunc(command)
}
