package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ScheduleDelimiter separates time slots inside a schedule
const ScheduleDelimiter = " | "

var (
	whitespaceRE    = regexp.MustCompile(`[\s\p{Z}\x{0085}]+`)
	repeatedDelimRE = regexp.MustCompile(`(\s*\|\s*){2,}`)
	leadingDelimRE  = regexp.MustCompile(`^\s*\|\s*`)
	trailingDelimRE = regexp.MustCompile(`\s*\|\s*$`)
	nonCostCharsRE  = regexp.MustCompile(`[^\d,]`)
)

// NormalizeSchedule renders a schedule cell as text. Line breaks become
// ScheduleDelimiter, markup is dropped and whitespace collapsed.
func NormalizeSchedule(cell *goquery.Selection) string {
	var parts []string
	for _, n := range cell.Nodes {
		parts = appendScheduleParts(parts, n)
	}
	return cleanSchedule(strings.Join(parts, " "))
}

// NormalizeScheduleText is NormalizeSchedule for raw text that may contain markup
func NormalizeScheduleText(raw string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return cleanSchedule(raw)
	}
	return NormalizeSchedule(doc.Find("body"))
}

func appendScheduleParts(parts []string, n *html.Node) []string {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if text := strings.TrimSpace(c.Data); text != "" {
				parts = append(parts, text)
			}
		case html.ElementNode:
			if c.Data == "br" {
				parts = append(parts, strings.TrimSpace(ScheduleDelimiter))
				continue
			}
			parts = appendScheduleParts(parts, c)
		}
	}
	return parts
}

func cleanSchedule(s string) string {
	s = whitespaceRE.ReplaceAllString(s, " ")
	s = repeatedDelimRE.ReplaceAllString(s, ScheduleDelimiter)
	s = leadingDelimRE.ReplaceAllString(s, "")
	s = trailingDelimRE.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// NormalizeCost converts a price such as "R$ 250,00" to 250. The comma is the
// decimal separator. Anything that does not parse, including free text like
// "Gratuito", is 0.
func NormalizeCost(text string) float64 {
	s := nonCostCharsRE.ReplaceAllString(strings.TrimSpace(text), "")
	s = strings.ReplaceAll(s, ",", ".")
	cost, err := strconv.ParseFloat(s, 64)
	if err != nil || cost < 0 {
		return 0
	}
	return cost
}

// strippedText concatenates the trimmed text nodes below the selection
func strippedText(sel *goquery.Selection) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(strings.TrimSpace(n.Data))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return sb.String()
}
