package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgPath   string
	storePath string
	ephemeral bool
)

var rootCmd = &cobra.Command{
	Use:   "gammachat",
	Short: "Multi-provider AI chat frontend",
	Long: `Gamma Chat is a lightweight web frontend for chatting with multiple hosted
language-model providers from one place.

It serves a marketing landing page and a chat page, streams provider responses
to the browser as they arrive, and keeps chat sessions in a local database.

Quick start:
  gammachat serve              # start the web frontend
  gammachat models             # list the supported models
  gammachat sessions list      # list stored chat sessions`,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to the config file")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Path to the session database")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "Keep sessions in memory instead of on disk")
}
