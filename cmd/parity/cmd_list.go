package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verneri/parity/pkg/pipeline"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the pipeline's prerequisites, stages, and checks in order",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	p, err := loadPipeline()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "pipeline: %s\n", p.Name)

	if len(p.Prerequisites) > 0 {
		fmt.Fprintln(out, "prerequisites:")
		for _, pre := range p.Prerequisites {
			line := "  " + pre.Tool
			if pre.Min != "" {
				line += " (>= " + pre.Min + ")"
			}
			fmt.Fprintln(out, line)
		}
	}

	for _, stage := range p.Setup {
		fmt.Fprintf(out, "setup %s:\n", stage.Name)
		for _, command := range stage.Commands {
			fmt.Fprintf(out, "  %s\n", command)
		}
	}

	fmt.Fprintln(out, "checks:")
	for _, c := range p.Checks {
		fmt.Fprintf(out, "  %s: %s\n", c.Name, describeCheck(&c))
	}
	return nil
}

func describeCheck(c *pipeline.Check) string {
	if c.Coverage != nil {
		return fmt.Sprintf("coverage %s in %s >= %g", c.Coverage.Path, c.Coverage.File, c.Coverage.Min)
	}
	return c.Run
}
