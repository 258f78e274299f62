package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json", false, "Write logs as JSON")
	cmd.PersistentFlags().String("timeout", DefaultHTTPTimeout.String(), "Set hard timeout for the page request")
	cmd.PersistentFlags().String("user-agent", "", "Custom user agent string")
	cmd.PersistentFlags().String("url", "", "Listing page to scrape (default: the FEF open registrations page)")
	cmd.PersistentFlags().StringArrayP("header", "H", []string{}, "Extra request headers (e.g., -H \"Cookie: a=b\")")
	cmd.PersistentFlags().String("env-file", DefaultEnvFile, "Path to a .env file with database settings (optional)")
}
