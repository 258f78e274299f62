// internal/cli/parse.go
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/law-makers/activities/internal/engine"
	"github.com/law-makers/activities/internal/engine/extractor"
	"github.com/law-makers/activities/internal/report"
	"github.com/law-makers/activities/internal/utils/output"
	"github.com/law-makers/activities/pkg/models"
)

func newParseCmd() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "parse <file.html>",
		Short: "Extract activities from a saved page without a database",
		Long: `Runs the extractor over a local HTML file and prints a summary per category,
the first activities in detail and statistics computed in memory. Nothing is
written to the database.`,
		Example: `  # Check a saved copy of the listing
  activities parse atividades-fef-example.html

  # Export what was found
  activities parse page.html --output activities.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			activities, err := extractor.ExtractReader(f)
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", args[0], err)
			}
			return showExtracted(cmd, activities, 3, 5, outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Also save the activities to a file (.json or .csv)")
	return cmd
}

// showExtracted prints the summary and statistics for freshly extracted
// activities and optionally exports them
func showExtracted(cmd *cobra.Command, activities []models.Activity, perCategory, detailed int, outputPath string) error {
	out := cmd.OutOrStdout()
	p := report.New(out, colorEnabled(out))

	if len(activities) == 0 {
		fmt.Fprintln(out, "\n⚠️  No activities found. The website structure may have changed.")
		return engine.ErrEmptyExtraction
	}

	p.Summary(activities, perCategory, detailed)
	p.Stats(report.ComputeStats(activities))

	if outputPath != "" {
		if err := output.Save(activities, outputPath); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Saved %d activities to %s\n", len(activities), outputPath)
	}
	return nil
}
