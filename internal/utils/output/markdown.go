package output

import (
	"fmt"
	"io"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
	urlutil "github.com/law-makers/activities/internal/utils/url"
)

// ToMarkdown converts a fetched page to GitHub flavoured Markdown. Tables are kept
// as Markdown tables and relative links are resolved against pageURL.
func ToMarkdown(page, pageURL string) (string, error) {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	converter.AddRules(md.Rule{
		Filter: []string{"a"},
		Replacement: func(content string, selec *goquery.Selection, opt *md.Options) *string {
			href, exists := selec.Attr("href")
			if !exists {
				return nil
			}
			str := fmt.Sprintf("[%s](%s)", selec.Text(), urlutil.ResolveURL(pageURL, href))
			return &str
		},
	})

	cleaned, err := CleanHTML(page)
	if err != nil {
		return "", err
	}
	return converter.ConvertString(cleaned)
}

// SaveMarkdown converts page with ToMarkdown and writes it to path
func SaveMarkdown(page, pageURL, path string) error {
	mdStr, err := ToMarkdown(page, pageURL)
	if err != nil {
		return err
	}
	return writeFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, mdStr)
		return err
	})
}
