package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "selfcare",
	Short: "Personal self-care assistant",
	Long:  "Selfcare stores timed self-care reminders, completes them as their time passes, and serves AI-assisted suggestions and chat. Single Go binary backed by SQLite.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
}
