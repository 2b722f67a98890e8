package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gammalabs/gamma-chat/internal/models"
	"github.com/spf13/cobra"
)

var (
	modelNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	modelMetaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the supported models",
	Run: func(_ *cobra.Command, _ []string) {
		for _, m := range models.Catalog {
			fmt.Printf("%s %s\n", m.Icon, modelNameStyle.Render(m.Name))
			fmt.Printf("  %s\n", modelMetaStyle.Render(fmt.Sprintf("%s · id %s · %d max tokens", m.Provider, m.ID, m.MaxTokens)))
			fmt.Printf("  %s\n", m.Description)
			fmt.Printf("  %s\n", modelMetaStyle.Render(strings.Join(m.Capabilities, ", ")))
		}
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
