// internal/cli/scrape.go
package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/law-makers/activities/internal/ui"
)

func newScrapeCmd() *cobra.Command {
	var noProgress bool

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Fetch the listing page and replace the stored activities",
		Long: `Downloads the open registrations page, extracts every activity and replaces
the activities table with the result in a single transaction. The run is
recorded in the scraping history whatever its outcome.

Exits with status 1 when the page cannot be fetched, when no activities are
found, or when the database write fails. The previous snapshot is kept in
those cases.`,
		Example: `  # Scrape the default FEF page
  activities scrape

  # Scrape another listing with a longer timeout
  activities scrape --url https://example.com/registrations --timeout 60s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := GetApp(cmd)
			ctx := cmd.Context()

			runner, err := a.Runner(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			pal := ui.Palette{Enabled: colorEnabled(out)}
			if !noProgress && a.Config.LogLevel != "error" && !a.Config.JSONLog {
				bar := newInsertBar(cmd.ErrOrStderr())
				runner.OnInsert = func() { _ = bar.Add(1) }
				defer bar.Finish()
			}

			fmt.Fprintf(out, "Scraping %s\n", a.Config.URL)
			res := runner.Run(ctx, a.Config.URL)
			if !res.Success {
				fmt.Fprintf(out, "%s\n", pal.Error("✗ Scraping failed"))
				return fmt.Errorf("scrape failed: %w", res.Err)
			}

			fmt.Fprintf(out, "%s %d activities saved in %s\n", pal.Success("✓ Scraping completed successfully!"), res.Count, res.Duration.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Do not show the insert progress indicator")
	return cmd
}

// newInsertBar returns a spinner counting inserted rows. The total is not known
// before extraction finishes.
func newInsertBar(w io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Saving activities"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
