package main

import (
	"github.com/spf13/cobra"

	"github.com/verneri/parity/pkg/runner"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: prerequisites, setup, then every check",
	Args:  cobra.NoArgs,
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	p, err := loadPipeline()
	if err != nil {
		return err
	}

	r := newRunner()
	summary, err := r.Run(cmd.Context(), p)
	if err != nil {
		return err
	}

	if summary.ExitCode() != runner.ExitOK {
		return errChecksFailed
	}
	return nil
}
