package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/verneri/parity/pkg/runner"
)

// Version is set at build time via ldflags
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "parity",
	Short: "Run your CI pipeline locally, check by check",
	Long: `Parity reproduces a repository's CI pipeline on the local machine: it
probes the required tools, runs the setup stages (image builds, service
startup), executes every declared check without stopping on failure, and
reports an aggregate pass/fail result. A local pass predicts a CI pass
because both run identical commands.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func main() {
	os.Exit(run())
}

func run() int {
	err := rootCmd.Execute()
	if err == nil {
		return runner.ExitOK
	}

	code := exitCode(err)
	if printable(err) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return code
}

// exitCode maps an execution error to the process exit status: failed
// checks and broken environments are different classes.
func exitCode(err error) int {
	if err == nil {
		return runner.ExitOK
	}
	if errors.Is(err, errChecksFailed) {
		return runner.ExitChecksFailed
	}
	return runner.ExitFatal
}

// printable reports whether err still needs printing. Check failures show
// up in the summary and fatal errors are printed by the runner, so only
// usage and load errors reach stderr here.
func printable(err error) bool {
	if errors.Is(err, errChecksFailed) {
		return false
	}
	var fatal *runner.FatalError
	return !errors.As(err, &fatal)
}
