package main

import (
	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Probe the required tools without running any checks",
	Args:  cobra.NoArgs,
	RunE:  runTools,
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}

func runTools(cmd *cobra.Command, _ []string) error {
	p, err := loadPipeline()
	if err != nil {
		return err
	}

	r := newRunner()
	return r.CheckPrerequisites(cmd.Context(), p.Prerequisites)
}
