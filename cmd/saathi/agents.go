package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/velamalamk2016-ui/aisaathi/internal/agents"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List available agents",
	Run: func(cmd *cobra.Command, args []string) {
		nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
		inputStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

		for _, info := range agents.NewRegistry(nil).Describe() {
			fmt.Println(nameStyle.Render(info.Name))
			fmt.Printf("  %s\n", info.Description)
			fmt.Println(inputStyle.Render(fmt.Sprintf("  inputs: %s", strings.Join(info.Inputs, ", "))))
			fmt.Println()
		}
	},
}
