package cmd

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "promptforge",
	Short: "Heuristic prompt optimizer",
	Long: `Promptforge rewrites a rough task description into a structurally
complete, execution-oriented prompt for a chosen target and scenario.

It detects missing structure (goal, constraints, deliverables, output
contract, success criteria), generates minimal-edit candidate rewrites, and
promotes the best candidate only when it measurably improves structure
without inflating length.

Available commands:
  optimize - Rewrite a rough prompt (reads stdin when no text given)
  weights  - Show or reset learned scoring weights
  version  - Print the version`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(weightsCmd)
	rootCmd.AddCommand(versionCmd)
}
