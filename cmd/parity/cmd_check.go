package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <name>",
	Short: "Run a single named check from the pipeline",
	Long: `Run one declared check in isolation, for diagnosing a failure reported
by a full run. Prerequisites are still probed first; setup stages are
assumed to have run already.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	p, err := loadPipeline()
	if err != nil {
		return err
	}

	c, ok := p.FindCheck(args[0])
	if !ok {
		return fmt.Errorf("no check named %q in pipeline %s", args[0], p.Name)
	}

	r := newRunner()
	if err := r.CheckPrerequisites(cmd.Context(), p.Prerequisites); err != nil {
		return err
	}

	result := r.RunCheck(cmd.Context(), c)
	if !result.OK() {
		return errChecksFailed
	}
	return nil
}
