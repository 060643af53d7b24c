package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/shelf/internal/app"
)

var outFlag string

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write the directory as a single self-contained HTML file",
	Long: `Loads the bookmark document once and writes a static page with the
stylesheet and script inlined and cards linking straight to their url.
Use --out - to write to stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		var buf bytes.Buffer
		if err := app.Export(cmd.Context(), cfg, &buf); err != nil {
			return fmt.Errorf("render %s: %w", cfg.Source, err)
		}

		if outFlag == "-" {
			_, err := buf.WriteTo(cmd.OutOrStdout())
			return err
		}
		if err := os.WriteFile(outFlag, buf.Bytes(), 0o644); err != nil { // #nosec G306 -- public page
			return fmt.Errorf("write %s: %w", outFlag, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bytes)\n", outFlag, buf.Len())
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&outFlag, "out", "o", "index.html", "output file, - for stdout")
	rootCmd.AddCommand(renderCmd)
}
