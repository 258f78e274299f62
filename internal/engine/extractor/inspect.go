package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PageInfo describes how the listing markers matched a page. It explains an
// empty extraction without reading the HTML.
type PageInfo struct {
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	Tables         int    `json:"tables"`
	BorderedTables int    `json:"bordered_tables"`
	CategoryCells  int    `json:"category_cells"`
	CenteredRows   int    `json:"centered_rows"`
}

// Inspect collects page title, description and marker counts
func Inspect(pageText string) PageInfo {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageText))
	if err != nil {
		return PageInfo{}
	}

	info := PageInfo{
		Title:          strings.TrimSpace(doc.Find("title").First().Text()),
		Tables:         doc.Find(relaxedTableSelector).Length(),
		BorderedTables: doc.Find(strictTableSelector).Length(),
		CategoryCells:  doc.Find(categorySelector).Length(),
		CenteredRows:   doc.Find(strictRowSelector).Length(),
	}
	doc.Find("meta").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		name, _ := sel.Attr("name")
		property, _ := sel.Attr("property")
		if strings.EqualFold(name, "description") || strings.EqualFold(property, "og:description") {
			info.Description = strings.TrimSpace(sel.AttrOr("content", ""))
			return false
		}
		return true
	})
	return info
}
