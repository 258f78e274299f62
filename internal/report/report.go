// Package report renders stored activities, statistics and run history for the terminal.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/law-makers/activities/internal/ui"
	"github.com/law-makers/activities/pkg/models"
)

const ruleWidth = 80

// Printer writes reports to W
type Printer struct {
	W   io.Writer
	pal ui.Palette
}

// New returns a Printer writing to w. color enables ANSI styling.
func New(w io.Writer, color bool) *Printer {
	return &Printer{W: w, pal: ui.Palette{Enabled: color}}
}

// FormatCost renders a cost as "R$ 250.00", or "FREE" when it is zero
func FormatCost(cost float64) string {
	if cost > 0 {
		return fmt.Sprintf("R$ %.2f", cost)
	}
	return "FREE"
}

func (p *Printer) style(code, s string) string {
	return p.pal.Style(code, s)
}

func (p *Printer) printf(format string, args ...any) {
	fmt.Fprintf(p.W, format, args...)
}

func (p *Printer) heavyRule() {
	p.printf("%s\n", strings.Repeat("=", ruleWidth))
}

func (p *Printer) lightRule() {
	p.printf("%s\n", p.style(ui.ColorDim, strings.Repeat("─", ruleWidth)))
}

func (p *Printer) title(s string) {
	p.printf("\n")
	p.heavyRule()
	p.printf("%s\n", p.style(ui.ColorBold+ui.ColorCyan, s))
	p.heavyRule()
}

func (p *Printer) activity(a models.Activity, labels bool) {
	p.printf("\n  🏃 %s\n", p.style(ui.ColorBold, a.ClassName))
	cost := FormatCost(a.Cost)
	if a.IsFree() {
		cost = p.style(ui.ColorGreen, cost)
	}
	if labels {
		p.printf("     ⏰ Schedule: %s\n", a.Schedule)
		p.printf("     💰 Cost: %s\n", cost)
		p.printf("     📅 Enrollment: %s\n", a.EnrollmentDeadline)
		return
	}
	p.printf("     ⏰ %s\n", a.Schedule)
	p.printf("     💰 %s\n", cost)
	p.printf("     📅 %s\n", a.EnrollmentDeadline)
}

// Activities prints every activity grouped under its category. The input is
// expected to be ordered by category.
func (p *Printer) Activities(activities []models.Activity) {
	p.title("FEF UNICAMP ACTIVITIES")

	current := ""
	for i, a := range activities {
		if i == 0 || a.Category != current {
			current = a.Category
			p.printf("\n")
			p.lightRule()
			p.printf("📚 %s\n", p.style(ui.ColorBold+ui.ColorYellow, current))
			p.lightRule()
		}
		p.activity(a, true)
	}

	p.printf("\n")
	p.heavyRule()
	p.printf("Total activities: %d\n", len(activities))
	p.heavyRule()
	p.printf("\n")
}

// Category prints the activities of a single category
func (p *Printer) Category(category string, activities []models.Activity) {
	p.title("Activities in category: " + category)

	for _, a := range activities {
		p.activity(a, false)
	}

	p.printf("\n")
	p.heavyRule()
	p.printf("Total: %d activities\n", len(activities))
	p.heavyRule()
	p.printf("\n")
}

// Categories prints the category list. Numbered lists are used by the menu.
func (p *Printer) Categories(categories []string, numbered bool) {
	if len(categories) == 0 {
		p.printf("\nNo categories found. Run a scrape first.\n")
		return
	}
	if numbered {
		p.printf("\nAvailable categories:\n")
		for i, c := range categories {
			p.printf("%d. %s\n", i+1, c)
		}
		return
	}
	p.printf("\nAll Categories:\n")
	for _, c := range categories {
		p.printf("  • %s\n", c)
	}
}

// Stats prints aggregate statistics. Price figures are omitted when nothing is paid.
func (p *Printer) Stats(s *models.Stats) {
	p.title("STATISTICS")
	p.printf("\n📊 Total Activities: %d\n", s.Total)
	p.printf("🆓 Free Activities: %d\n", s.Free)
	p.printf("💵 Paid Activities: %d\n", s.Paid)

	if s.AverageCost != nil {
		p.printf("\n💰 Price Statistics (paid activities):\n")
		p.printf("   Average: R$ %.2f\n", *s.AverageCost)
		if s.MinCost != nil && s.MaxCost != nil {
			p.printf("   Range: R$ %.2f - R$ %.2f\n", *s.MinCost, *s.MaxCost)
		}
	}

	p.printf("\n📚 Activities by Category:\n")
	for _, c := range s.ByCategory {
		p.printf("   • %s: %d\n", c.Category, c.Count)
	}
	p.heavyRule()
	p.printf("\n")
}

// History prints scraping runs, newest first
func (p *Printer) History(runs []models.RunRecord) {
	p.title("SCRAPING HISTORY")
	if len(runs) == 0 {
		p.printf("\nNo runs recorded yet.\n\n")
		return
	}

	p.printf("\n")
	for _, r := range runs {
		status := p.style(ui.ColorGreen, "✓ success")
		if r.Status != models.RunSuccess {
			status = p.style(ui.ColorRed, "✗ "+string(r.Status))
		}
		p.printf("%-20s  %-12s  %4d activities", r.ScrapedAt.Local().Format(time.DateTime), status, r.TotalActivities)
		if r.ErrorMessage != nil {
			p.printf("  %s", p.style(ui.ColorDim, *r.ErrorMessage))
		}
		p.printf("\n")
	}
	p.printf("\n")
}

// Summary prints an overview of freshly extracted activities: up to perCategory
// entries for each category in alphabetical order, then the first detailed
// records in full.
func (p *Printer) Summary(activities []models.Activity, perCategory, detailed int) {
	p.title(fmt.Sprintf("Found %d activities", len(activities)))

	var order []string
	byCategory := map[string][]models.Activity{}
	for _, a := range activities {
		if _, ok := byCategory[a.Category]; !ok {
			order = append(order, a.Category)
		}
		byCategory[a.Category] = append(byCategory[a.Category], a)
	}
	sort.Strings(order)

	for _, c := range order {
		list := byCategory[c]
		p.printf("\n📚 %s (%d activities)\n", p.style(ui.ColorBold, c), len(list))
		for i, a := range list {
			if i == perCategory {
				p.printf("   ... and %d more\n", len(list)-perCategory)
				break
			}
			p.printf("   • %s - %s\n", a.ClassName, FormatCost(a.Cost))
		}
	}

	if detailed > len(activities) {
		detailed = len(activities)
	}
	if detailed > 0 {
		p.printf("\n")
		p.lightRule()
		p.printf("First %d activities (detailed):\n", detailed)
		p.lightRule()
		for i, a := range activities[:detailed] {
			p.printf("\n%d. Category: %s\n", i+1, a.Category)
			p.printf("   Class: %s\n", a.ClassName)
			p.printf("   Schedule: %s\n", a.Schedule)
			p.printf("   Cost: %s\n", FormatCost(a.Cost))
			p.printf("   Deadline: %s\n", a.EnrollmentDeadline)
		}
	}
	p.printf("\n")
}
