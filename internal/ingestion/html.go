package ingestion

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockSelectors end a line after their content.
const blockSelectors = "p, div, section, article, header, footer, h1, h2, h3, h4, h5, h6, li, ul, ol, tr, table, dt, dd, blockquote, pre"

// FlattenHTML renders an HTML resume as text: block elements end lines, list items become "- " bullets
// and scripts and styles are dropped.
func FlattenHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("head, script, style, noscript, template").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").PrependHtml("- ")
	doc.Find("td, th").AppendHtml(" ")
	doc.Find(blockSelectors).AppendHtml("\n")

	return CleanText(doc.Find("body").Text()), nil
}
