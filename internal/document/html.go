package document

import (
	"path/filepath"
	"strings"

	"github.com/yash-makwana/ipo/internal/model"
	"golang.org/x/net/html"
)

// htmlFormat reads an HTML rendering of a filing and extracts its visible
// text as a single page
type htmlFormat struct{}

func (f *htmlFormat) Name() string { return "html" }

func (f *htmlFormat) CanHandle(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".html" || ext == ".htm"
}

func (f *htmlFormat) Parse(data []byte, source string) (*model.Document, error) {
	doc, err := html.Parse(strings.NewReader(string(data)))
	if err != nil {
		return nil, err
	}

	return &model.Document{
		Source: source,
		Pages:  []model.Page{{Number: 1, Text: extractVisibleText(doc)}},
	}, nil
}

// extractVisibleText collects text nodes, skipping scripts and styles
func extractVisibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return strings.TrimSpace(buf.String())
}
