package output

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// SaveHTML writes the page exactly as fetched
func SaveHTML(page, path string) error {
	return writeFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, page)
		return err
	})
}

// CleanHTML removes scripts, styles and form controls from a page. Only the
// attributes the extractor matches on (class and style) plus link targets are kept.
func CleanHTML(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, link, meta, noscript, iframe, svg, form, input, button, select, textarea, canvas").Remove()

	doc.Find("*").Each(func(i int, s *goquery.Selection) {
		if len(s.Nodes) == 0 {
			return
		}
		node := s.Nodes[0]
		var kept []html.Attribute
		for _, attr := range node.Attr {
			if keepAttr(node.Data, attr.Key) {
				kept = append(kept, attr)
			}
		}
		node.Attr = kept
	})

	htmlStr, err := doc.Html()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(htmlStr), nil
}

func keepAttr(tag, key string) bool {
	switch key {
	case "class", "style":
		return true
	case "href", "title":
		return tag == "a"
	case "colspan", "rowspan":
		return tag == "td" || tag == "th"
	}
	return false
}
