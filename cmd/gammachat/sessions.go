package main

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/gammalabs/gamma-chat/internal/models"
	"github.com/spf13/cobra"
)

var (
	sessionTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212"))

	sessionIDStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	sessionMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243"))
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Inspect and manage stored chat sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored chat sessions",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cfgPath)
		if err != nil {
			return err
		}
		logger := cfg.logger()

		st, closeStore, err := openStore(cfg, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		sessions := st.List()
		if len(sessions) == 0 {
			fmt.Println("No stored sessions.")
			return nil
		}

		for _, ses := range sessions {
			fmt.Println(sessionTitleStyle.Render(ses.Title))
			fmt.Printf("  %s %s\n",
				sessionIDStyle.Render(ses.ID),
				sessionMetaStyle.Render(fmt.Sprintf("%d messages · %s · updated %s",
					len(ses.Messages), ses.Model, ses.UpdatedAt.Format("2006-01-02 15:04"))))
		}
		return nil
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a stored chat session",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		cfg, err := loadConfig(cfgPath)
		if err != nil {
			return err
		}
		logger := cfg.logger()

		st, closeStore, err := openStore(cfg, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		id := args[0]
		if !slices.ContainsFunc(st.List(), func(ses models.Session) bool { return ses.ID == id }) {
			return fmt.Errorf("no session with id %s", id)
		}

		st.Delete(id)
		fmt.Printf("Deleted session %s\n", id)
		return nil
	},
}

func init() {
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
	rootCmd.AddCommand(sessionsCmd)
}
