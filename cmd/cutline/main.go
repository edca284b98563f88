// Package main provides the entry point for the cutline CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/cutline/cmd/cutline/commands"
	"github.com/Sumatoshi-tech/cutline/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cutline",
		Short: "Cutline - editorial timeline inspection tool",
		Long: `Cutline reads, queries and converts editorial timeline files.

Commands:
  inspect   Print the structure and placements of a timeline
  query     Resolve elements at a time or within a range
  convert   Convert a timeline between file formats
  diff      Compare two timeline files
  chart     Render a timeline layout as an HTML chart
  validate  Validate a timeline file against the document schema`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewInspectCommand())
	rootCmd.AddCommand(commands.NewQueryCommand())
	rootCmd.AddCommand(commands.NewConvertCommand())
	rootCmd.AddCommand(commands.NewDiffCommand())
	rootCmd.AddCommand(commands.NewChartCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "cutline %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
