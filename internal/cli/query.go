// internal/cli/query.go
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/law-makers/activities/internal/report"
	"github.com/law-makers/activities/internal/store"
	"github.com/law-makers/activities/internal/utils/output"
)

var errNoData = errors.New("no data yet, run \"activities scrape\" first")

// storeErr turns a missing-table error into a hint for first-time users
func storeErr(err error) error {
	if store.IsMissingSchema(err) {
		return errNoData
	}
	return err
}

func printer(cmd *cobra.Command) *report.Printer {
	out := cmd.OutOrStdout()
	return report.New(out, colorEnabled(out))
}

func newListCmd() *cobra.Command {
	var (
		format     string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show all stored activities grouped by category",
		Example: `  # Browse everything
  activities list

  # Machine-readable output
  activities list --format json

  # Export to a spreadsheet
  activities list --output activities.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := GetApp(cmd).Store(cmd.Context())
			if err != nil {
				return err
			}
			activities, err := s.ListAll(cmd.Context())
			if err != nil {
				return storeErr(err)
			}

			if outputPath != "" {
				if err := output.Save(activities, outputPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved %d activities to %s\n", len(activities), outputPath)
				return nil
			}

			switch strings.ToLower(format) {
			case "text", "":
				printer(cmd).Activities(activities)
				return nil
			case "json":
				return output.WriteJSON(cmd.OutOrStdout(), activities)
			case "csv":
				return output.WriteCSV(cmd.OutOrStdout(), activities)
			default:
				return fmt.Errorf("invalid format: %s (must be text, json, or csv)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json, or csv")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "File path to save the activities (supports .json, .csv)")
	return cmd
}

func newCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "category <name>",
		Short: "Show the activities of one category",
		Example: `  activities category "Natação"`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := GetApp(cmd).Store(cmd.Context())
			if err != nil {
				return err
			}
			activities, err := s.ListByCategory(cmd.Context(), args[0])
			if err != nil {
				return storeErr(err)
			}
			if len(activities) == 0 {
				return fmt.Errorf("no activities in category %q (see \"activities categories\")", args[0])
			}
			printer(cmd).Category(args[0], activities)
			return nil
		},
	}
}

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the stored categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := GetApp(cmd).Store(cmd.Context())
			if err != nil {
				return err
			}
			categories, err := s.Categories(cmd.Context())
			if err != nil {
				return storeErr(err)
			}
			printer(cmd).Categories(categories, false)
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show counts and price statistics of the stored activities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := GetApp(cmd).Store(cmd.Context())
			if err != nil {
				return err
			}
			stats, err := s.Stats(cmd.Context())
			if err != nil {
				return storeErr(err)
			}
			printer(cmd).Stats(stats)
			return nil
		},
	}
}

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the most recent scraping runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be > 0")
			}
			s, err := GetApp(cmd).Store(cmd.Context())
			if err != nil {
				return err
			}
			runs, err := s.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return storeErr(err)
			}
			printer(cmd).History(runs)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to show")
	return cmd
}
