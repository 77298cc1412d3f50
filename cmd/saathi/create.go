package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/velamalamk2016-ui/aisaathi/internal/config"
	"github.com/velamalamk2016-ui/aisaathi/internal/tui"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Build and run a workflow interactively",
	Long: `Launch the interactive workflow builder.

Walks through naming a workflow and adding tasks, one agent at a time,
then executes the assembled workflow and prints the results.`,
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	registry, client := buildRegistry(cfg)

	builder, err := tui.Run(registry.Names())
	if err != nil {
		return fmt.Errorf("workflow builder: %w", err)
	}
	if builder.Canceled() {
		fmt.Println("Canceled")
		return nil
	}

	orch, cleanup := buildOrchestrator(cfg, registry)
	defer cleanup()

	if client == nil {
		printStatus("⚠", "No API key configured, agents will produce demo content", color.FgYellow)
	}

	wf := orch.CreateWorkflow(cmd.Context(), builder.WorkflowID(), builder.Tasks())
	fmt.Printf("Workflow %s\n", wf.WorkflowID)
	printWorkflow(wf)

	if cfg.Orchestrator.ExportPath != "" {
		if err := orch.SaveResults(cfg.Orchestrator.ExportPath); err != nil {
			return fmt.Errorf("saving results: %w", err)
		}
		fmt.Printf("Results saved to %s\n", cfg.Orchestrator.ExportPath)
	}

	return nil
}
