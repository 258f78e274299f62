// internal/cli/password.go
package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/law-makers/activities/internal/config"
)

func newPasswordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Manage the database password stored in the OS keyring",
		Long: `The database password is looked up in the OS keyring when DB_PASSWORD is not
set. Entries are stored under the service "activities-cli" and the database
user as account.`,
	}

	var user string

	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Store the database password (read from stdin)",
		Example: `  # Prompt for the password of the configured DB_USER
  activities password set

  # Non-interactive
  printf '%s\n' "$PGPASSWORD" | activities password set --user scraper`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			account := accountFor(cmd, user)

			fmt.Fprintf(cmd.ErrOrStderr(), "Password for %s: ", account)
			scanner := bufio.NewScanner(cmd.InOrStdin())
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return err
				}
				return fmt.Errorf("no password given")
			}
			password := strings.TrimRight(scanner.Text(), "\r")
			if password == "" {
				return fmt.Errorf("no password given")
			}

			if err := config.StorePassword(account, password); err != nil {
				return fmt.Errorf("failed to store password: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Password for '%s' saved to the keyring.\n", account)
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove the stored database password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			account := accountFor(cmd, user)
			if err := config.DeletePassword(account); err != nil {
				return fmt.Errorf("failed to delete password: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Password for '%s' removed from the keyring.\n", account)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&user, "user", "", "Database user the password belongs to (default: DB_USER)")
	cmd.AddCommand(setCmd, deleteCmd)
	return cmd
}

func accountFor(cmd *cobra.Command, user string) string {
	if user != "" {
		return user
	}
	return GetApp(cmd).Config.Database.User
}
