package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/velamalamk2016-ui/aisaathi/internal/config"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available workflow templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		store := buildTemplateStore(cfg)
		defer store.Close()

		nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
		taskStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

		for _, tpl := range store.Describe() {
			fmt.Println(nameStyle.Render(tpl.Name))
			fmt.Printf("  %s\n", tpl.Description)
			for _, task := range tpl.Tasks {
				line := fmt.Sprintf("  %s (%s)", task.ID, task.Agent)
				if len(task.Dependencies) > 0 {
					line += fmt.Sprintf(" after %v", task.Dependencies)
				}
				fmt.Println(taskStyle.Render(line))
			}
			fmt.Println()
		}
		return nil
	},
}
