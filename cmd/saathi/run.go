package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/velamalamk2016-ui/aisaathi/internal/config"
	"github.com/velamalamk2016-ui/aisaathi/pkg/models"
)

var (
	runAll    bool
	runOutput string
)

var runCmd = &cobra.Command{
	Use:   "run [template...]",
	Short: "Run workflow templates",
	Long: `Execute one or more workflow templates and save the results.

Each template expands into a workflow of agent tasks. Tasks run
concurrently once their dependencies complete.

Examples:
  saathi run complete_lesson_creation
  saathi run content_localization assessment_workflow
  saathi run --all`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runAll, "all", false, "Run every available template")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "Results file (overrides config)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store := buildTemplateStore(cfg)
	defer store.Close()

	names := args
	if runAll {
		names = store.Names()
	}
	if len(names) == 0 {
		return fmt.Errorf("no templates given; pass template names or --all")
	}

	registry, client := buildRegistry(cfg)
	orch, cleanup := buildOrchestrator(cfg, registry)
	defer cleanup()

	if client != nil {
		printStatus("✓", fmt.Sprintf("Using model %s", client.ModelName()), color.FgGreen)
	} else {
		printStatus("⚠", "No API key configured, agents will produce demo content", color.FgYellow)
	}
	fmt.Println()

	for _, name := range names {
		tpl, ok := store.Get(name)
		if !ok {
			return fmt.Errorf("unknown template: %s", name)
		}

		fmt.Printf("Executing %s (%d tasks)\n", name, len(tpl.Tasks))

		workflowID := fmt.Sprintf("%s_%s", name, time.Now().Format("20060102_150405"))
		wf := orch.CreateWorkflow(cmd.Context(), workflowID, tpl.Tasks)
		printWorkflow(wf)
	}

	output := cfg.Orchestrator.ExportPath
	if runOutput != "" {
		output = runOutput
	}
	if output != "" {
		if err := orch.SaveResults(output); err != nil {
			return fmt.Errorf("saving results: %w", err)
		}
		fmt.Printf("Results saved to %s\n", output)
	}

	printSummary(orch.ExecutionHistory())
	return nil
}

// printWorkflow prints a one-workflow result block.
func printWorkflow(wf *models.Workflow) {
	if wf.Status == models.WorkflowStatusCompleted {
		printStatus("✓", string(wf.Status), color.FgGreen)
	} else {
		printStatus("✗", string(wf.Status), color.FgRed)
	}

	fmt.Printf("  Execution time: %.2fs\n", wf.ExecutionTime)
	if wf.FinalOutput != nil {
		fmt.Printf("  Tasks: %d/%d successful\n", wf.FinalOutput.SuccessfulTasks, wf.FinalOutput.TotalTasks)
	}
	if wf.Error != "" {
		printStatus("✗", wf.Error, color.FgRed)
	}

	for _, task := range wf.Tasks {
		if task.Status == models.TaskStatusFailed {
			fmt.Printf("  %s: %s\n", task.ID, task.Error)
		}
	}
	fmt.Println()
}

// printSummary prints aggregate stats over the execution history.
func printSummary(history []*models.Workflow) {
	if len(history) == 0 {
		return
	}

	successful := 0
	var total float64
	for _, wf := range history {
		if wf.Status == models.WorkflowStatusCompleted {
			successful++
		}
		total += wf.ExecutionTime
	}

	fmt.Println("Summary:")
	fmt.Printf("  Workflows executed: %d\n", len(history))
	fmt.Printf("  Successful: %d\n", successful)
	fmt.Printf("  Average execution time: %.2fs\n", total/float64(len(history)))
}

// printStatus prints a colored status line.
func printStatus(symbol, message string, attr color.Attribute) {
	c := color.New(attr)
	c.Printf("%s ", symbol)
	fmt.Fprintln(os.Stdout, message)
}
