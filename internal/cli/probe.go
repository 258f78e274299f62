// internal/cli/probe.go
package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/law-makers/activities/internal/engine"
	"github.com/law-makers/activities/internal/engine/extractor"
	"github.com/law-makers/activities/internal/utils/output"
)

// debugDumpName is the base name of the page dump written when nothing is extracted
const debugDumpName = "debug_output"

func newProbeCmd() *cobra.Command {
	var (
		dumpDir    string
		markdown   bool
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Fetch and parse the live page without touching the database",
		Long: `Fetches the configured page and runs the extractor, printing what would be
stored. When no activities are found the page is saved to debug_output.html
(and debug_output.md with --markdown) for inspection, and the command exits
with status 1.`,
		Example: `  # Check that the live page still parses
  activities probe

  # Keep a Markdown rendering of the page when parsing fails
  activities probe --markdown --dump-dir /tmp`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := GetApp(cmd)
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Target URL: %s\n", a.Config.URL)
			page, err := a.Fetcher.Fetch(cmd.Context(), a.Config.URL)
			if err != nil {
				return fmt.Errorf("failed to fetch webpage: %w", err)
			}

			info := extractor.Inspect(page)
			fmt.Fprintf(out, "Page: %q (%d tables, %d bordered, %d category cells, %d centered rows)\n",
				info.Title, info.Tables, info.BorderedTables, info.CategoryCells, info.CenteredRows)

			activities := extractor.Extract(page)
			err = showExtracted(cmd, activities, 2, 0, outputPath)
			if !errors.Is(err, engine.ErrEmptyExtraction) {
				return err
			}

			htmlPath := filepath.Join(dumpDir, debugDumpName+".html")
			if dumpErr := output.SaveHTML(page, htmlPath); dumpErr != nil {
				log.Warn().Err(dumpErr).Msg("Failed to save page for inspection")
				return err
			}
			fmt.Fprintf(out, "✓ HTML saved to %s\n", htmlPath)

			if markdown {
				mdPath := filepath.Join(dumpDir, debugDumpName+".md")
				if mdErr := output.SaveMarkdown(page, a.Config.URL, mdPath); mdErr != nil {
					log.Warn().Err(mdErr).Msg("Failed to save Markdown rendering")
				} else {
					fmt.Fprintf(out, "✓ Markdown saved to %s\n", mdPath)
				}
			}
			return err
		},
	}

	cmd.Flags().StringVar(&dumpDir, "dump-dir", ".", "Directory for the page dump written when nothing is found")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Also dump the page as Markdown")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Also save the activities to a file (.json or .csv)")
	return cmd
}
