package document

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors carry no resume content.
var noiseSelectors = []string{
	"script", "style", "noscript", "template",
	"img", "picture", "svg", "canvas",
	"iframe", "video", "audio",
	"form", "button", "input", "select", "textarea",
}

// decodeHTML keeps the main content container and renders it as Markdown so
// headings and list items stay on their own lines.
func decodeHTML(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
	if err != nil {
		return "", fmt.Errorf("parsing html: %w", err)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	var content *goquery.Selection
	for _, tag := range []string{"main", "article", "body"} {
		if sel := doc.Find(tag); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil {
		return "", fmt.Errorf("no content container in html")
	}

	fragment, err := goquery.OuterHtml(content)
	if err != nil {
		return "", fmt.Errorf("serializing html: %w", err)
	}

	markdown, err := htmltomarkdown.ConvertString(fragment)
	if err != nil {
		return "", fmt.Errorf("converting html to markdown: %w", err)
	}

	return markdown, nil
}
