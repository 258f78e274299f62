// internal/cli/root.go
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/law-makers/activities/internal/app"
	"github.com/law-makers/activities/internal/config"
	"github.com/law-makers/activities/internal/ui"
)

// Version is reported by --version
const Version = "0.1.0"

// NewRootCmd builds the command tree. appOpts are passed to app.New when a
// command initializes the application.
func NewRootCmd(appOpts ...app.Option) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "activities",
		Short: "Scrape FEF UNICAMP physical-activity offerings into PostgreSQL",
		Long: `Activities fetches the FEF UNICAMP open registrations page, extracts every
offered class with its schedule, cost and enrollment deadline, and replaces the
stored snapshot in PostgreSQL. Each scrape is recorded in the run history.

The stored data can be browsed with list, category, categories and stats, or
interactively with menu.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Lazily initialize the application before running commands (avoid starting app for -h/help)
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if GetApp(cmd) != nil {
			return nil
		}

		cfg, err := config.Load(cmd)
		if err != nil {
			return err
		}

		a, err := app.New(cmd.Context(), cfg, appOpts...)
		if err != nil {
			return err
		}
		SetApp(cmd, a)
		return nil
	}

	config.RegisterFlags(rootCmd)
	rootCmd.Flags().BoolP("help", "h", false, "Help for activities")
	rootCmd.Flags().Bool("version", false, "Version for activities")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetHelpFunc(customHelpFunc)
	rootCmd.SetUsageFunc(customUsageFunc)

	rootCmd.AddCommand(
		newScrapeCmd(),
		newParseCmd(),
		newProbeCmd(),
		newListCmd(),
		newCategoryCmd(),
		newCategoriesCmd(),
		newStatsCmd(),
		newHistoryCmd(),
		newMenuCmd(),
		newPasswordCmd(),
	)
	return rootCmd
}

// execute runs rootCmd with args and closes the application afterwards, on
// every exit path
func execute(ctx context.Context, rootCmd *cobra.Command, args []string) error {
	ctx, holder := withAppHolder(ctx)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)

	if holder.app != nil {
		if closeErr := holder.app.Close(context.Background()); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	return err
}

// Execute runs the CLI with the process arguments and returns the exit code.
// This is called by main.main().
func Execute() int {
	if err := execute(context.Background(), NewRootCmd(), os.Args[1:]); err != nil {
		log.Debug().Err(err).Msg("Command failed")
		fmt.Fprintf(os.Stderr, "%s %v\n", ui.Palette{Enabled: colorEnabled(os.Stderr)}.Error("Error:"), err)
		return 1
	}
	return 0
}

// colorEnabled reports whether w is a terminal that should receive ANSI styling
func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
