package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/shelf/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of shelf",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "shelf %s\n", version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
