package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/shelf/internal/app"
)

var listenFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bookmark directory server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&listenFlag, "listen", "l", "", "listen address, e.g. :8080 (overrides SHELF_LISTEN_PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if listenFlag != "" {
		cfg.ListenPort = listenFlag
	}

	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("❌ shelf failed to start: %w", err)
	}
	return a.Run()
}
