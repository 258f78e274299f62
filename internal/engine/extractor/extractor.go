// internal/engine/extractor/extractor.go

// Package extractor turns the activities listing page into Activity records.
//
// The page groups offerings in bordered tables. Each table carries one styled
// header cell naming the category and one tbody per offered class.
package extractor

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/activities/pkg/models"
	"github.com/rs/zerolog/log"
)

// Markers used by the listing page
const (
	TableClass    = "table-bordered"
	CategoryColor = "#153975"
	RowClass      = "text-center"

	minCells = 4
)

var (
	strictTableSelector  = `table[class*="` + TableClass + `"]`
	relaxedTableSelector = "table"
	categorySelector     = `td[style*="` + CategoryColor + `"]`
	strictRowSelector    = `tr[class*="` + RowClass + `"]`
	relaxedRowSelector   = "tr"
)

// Extract parses page text and returns the activities found in document order.
// It never fails: malformed markup is tolerated and an empty slice means no
// activity table matched.
func Extract(pageText string) []models.Activity {
	activities, _ := ExtractReader(strings.NewReader(pageText))
	return activities
}

// ExtractReader is Extract over a reader. The only error it returns comes from
// reading r; the HTML itself never causes one.
func ExtractReader(r io.Reader) ([]models.Activity, error) {
	activities := make([]models.Activity, 0)

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return activities, err
	}

	selectTables(doc.Selection).Each(func(i int, table *goquery.Selection) {
		category, ok := tableCategory(table)
		if !ok {
			return
		}

		table.Find("tbody").Each(func(j int, tbody *goquery.Selection) {
			row, ok := activityRow(tbody)
			if !ok {
				return
			}

			activity, ok := parseRow(category, row)
			if !ok {
				return
			}

			log.Debug().
				Str("category", activity.Category).
				Str("class", activity.ClassName).
				Msg("Extracted activity")
			activities = append(activities, activity)
		})
	})

	return activities, nil
}

// firstNonEmpty evaluates lookups in order and returns the first selection that
// matched anything
func firstNonEmpty(lookups ...func() *goquery.Selection) (*goquery.Selection, bool) {
	for _, lookup := range lookups {
		if sel := lookup(); sel.Length() > 0 {
			return sel, true
		}
	}
	return nil, false
}

// selectTables returns the bordered tables, or every table when the page has
// none with the marker class
func selectTables(root *goquery.Selection) *goquery.Selection {
	tables, ok := firstNonEmpty(
		func() *goquery.Selection { return root.Find(strictTableSelector) },
		func() *goquery.Selection { return root.Find(relaxedTableSelector) },
	)
	if !ok {
		return root.Find(strictTableSelector)
	}
	return tables
}

// tableCategory reads the first category-coloured cell of a table
func tableCategory(table *goquery.Selection) (string, bool) {
	cell := table.Find(categorySelector).First()
	if cell.Length() == 0 {
		return "", false
	}
	category := strippedText(cell)
	return category, category != ""
}

// activityRow picks the row of a tbody that describes the activity. Only one row
// per tbody is ever used.
func activityRow(tbody *goquery.Selection) (*goquery.Selection, bool) {
	row, ok := firstNonEmpty(
		func() *goquery.Selection { return tbody.Find(strictRowSelector).First() },
		func() *goquery.Selection { return tbody.Find(relaxedRowSelector).First() },
	)
	return row, ok
}

func parseRow(category string, row *goquery.Selection) (models.Activity, bool) {
	cells := row.Find("td")
	if cells.Length() < minCells {
		return models.Activity{}, false
	}

	return models.Activity{
		Category:           category,
		ClassName:          strippedText(cells.Eq(0)),
		Schedule:           NormalizeSchedule(cells.Eq(1)),
		Cost:               NormalizeCost(strippedText(cells.Eq(2))),
		EnrollmentDeadline: strippedText(cells.Eq(3)),
	}, true
}
