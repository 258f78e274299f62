// internal/cli/menu.go
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/law-makers/activities/internal/report"
	"github.com/law-makers/activities/internal/store"
)

func newMenuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Browse the stored activities interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := GetApp(cmd).Store(cmd.Context())
			if err != nil {
				return err
			}
			m := &menu{
				store: s,
				in:    bufio.NewScanner(cmd.InOrStdin()),
				out:   cmd.OutOrStdout(),
				p:     printer(cmd),
			}
			return m.run(cmd.Context())
		},
	}
}

// menu is the numbered query loop. It ends on option 5 or end of input.
type menu struct {
	store *store.Store
	in    *bufio.Scanner
	out   io.Writer
	p     *report.Printer
}

func (m *menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *menu) run(ctx context.Context) error {
	for {
		fmt.Fprintf(m.out, "\n%s\n", strings.Repeat("=", 80))
		fmt.Fprintln(m.out, "FEF UNICAMP Activities Database Query Tool")
		fmt.Fprintln(m.out, strings.Repeat("=", 80))
		fmt.Fprintln(m.out, "\n1. Display all activities")
		fmt.Fprintln(m.out, "2. Display activities by category")
		fmt.Fprintln(m.out, "3. Display statistics")
		fmt.Fprintln(m.out, "4. List all categories")
		fmt.Fprintln(m.out, "5. Exit")

		choice, ok := m.prompt("\nEnter your choice (1-5): ")
		if !ok {
			fmt.Fprintln(m.out)
			return m.in.Err()
		}

		var err error
		switch choice {
		case "1":
			err = m.showAll(ctx)
		case "2":
			err = m.showCategory(ctx)
		case "3":
			err = m.showStats(ctx)
		case "4":
			err = m.listCategories(ctx)
		case "5":
			fmt.Fprintln(m.out, "\nGoodbye!")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice. Please try again.")
		}
		if err != nil {
			fmt.Fprintf(m.out, "Error: %v\n", storeErr(err))
		}
	}
}

func (m *menu) showAll(ctx context.Context) error {
	activities, err := m.store.ListAll(ctx)
	if err != nil {
		return err
	}
	m.p.Activities(activities)
	return nil
}

func (m *menu) showCategory(ctx context.Context) error {
	categories, err := m.store.Categories(ctx)
	if err != nil {
		return err
	}
	m.p.Categories(categories, true)
	if len(categories) == 0 {
		return nil
	}

	answer, ok := m.prompt("\nEnter category number: ")
	if !ok {
		return nil
	}
	idx, err := strconv.Atoi(answer)
	if err != nil {
		fmt.Fprintln(m.out, "Invalid input")
		return nil
	}
	if idx < 1 || idx > len(categories) {
		fmt.Fprintln(m.out, "Invalid category number")
		return nil
	}

	activities, err := m.store.ListByCategory(ctx, categories[idx-1])
	if err != nil {
		return err
	}
	m.p.Category(categories[idx-1], activities)
	return nil
}

func (m *menu) showStats(ctx context.Context) error {
	stats, err := m.store.Stats(ctx)
	if err != nil {
		return err
	}
	m.p.Stats(stats)
	return nil
}

func (m *menu) listCategories(ctx context.Context) error {
	categories, err := m.store.Categories(ctx)
	if err != nil {
		return err
	}
	m.p.Categories(categories, false)
	return nil
}
