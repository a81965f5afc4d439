// Package cmd implements the CLI commands for the devlog server.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "devlog",
	Short: "A developer blog with Markdown authoring",
	Long: "devlog serves a developer blog: a searchable, category-filtered post\n" +
		"listing, a Markdown editor with drafts, and a read-only JSON API.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
