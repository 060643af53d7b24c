package main

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/shelf/internal/config"
)

var (
	sourceFlag string
	titleFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "shelf",
	Short: "Self-hosted bookmark directory",
	Long: `Shelf serves a categorized bookmark directory from a JSON or YAML
document: cards grouped by category, a category sidebar that follows
scrolling, and live search over titles and descriptions.

Without a subcommand it runs the server (same as "shelf serve").`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&sourceFlag, "source", "s", "", "bookmark document, file path or http(s) URL (overrides SHELF_SOURCE)")
	rootCmd.PersistentFlags().StringVar(&titleFlag, "title", "", "page title (overrides SHELF_TITLE)")
}

// loadConfig reads the environment, then applies command-line overrides.
func loadConfig() *config.Config {
	cfg := config.Load()
	if sourceFlag != "" {
		cfg.Source = sourceFlag
	}
	if titleFlag != "" {
		cfg.Title = titleFlag
	}
	return cfg
}
