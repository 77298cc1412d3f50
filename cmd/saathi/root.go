package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "saathi",
	Short: "Educational AI agent workflow orchestrator",
	Long: `Saathi orchestrates educational AI agents into dependency-ordered
workflows. Agents generate lesson plans, teaching aids, assessments,
stories, and translations, backed by Claude or demo content when no
API key is configured.

With no arguments, launches the interactive workflow builder.

Core capabilities:
- Runs tasks concurrently once their dependencies complete
- Detects circular and missing dependencies
- Ships reusable workflow templates
- Serves the orchestrator over an HTTP JSON API`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreate(cmd, args)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(agentsCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
