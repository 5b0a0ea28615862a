package markup

import (
	"fmt"
	"log/slog"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
)

// Converter bundles the HTML operations the converter needs: finding image
// references in a body and rendering a body in the target format.
type Converter struct {
	html bool
}

// NewConverter returns a Converter that renders bodies verbatim when html is
// true and as Markdown otherwise.
func NewConverter(html bool) *Converter {
	return &Converter{html: html}
}

// ImageSources returns the src attribute of every img element in document
// order. Images without a src are ignored.
func (c *Converter) ImageSources(body string) ([]string, error) {
	if strings.TrimSpace(body) == "" {
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var srcs []string
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok && strings.TrimSpace(src) != "" {
			srcs = append(srcs, strings.TrimSpace(src))
		}
	})

	return srcs, nil
}

// Render converts body to the target format.
func (c *Converter) Render(body string) (string, error) {
	if c.html {
		return body, nil
	}

	markdown, err := htmltomarkdown.ConvertString(body)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}

	slog.Debug("Body converted to markdown",
		"html_length", len(body),
		"markdown_length", len(markdown))

	return markdown, nil
}
