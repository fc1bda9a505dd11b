package htmltomarkdown

import (
	"net/url"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/wizperch/perch"
)

// Ensure Converter implements perch.Converter at compile time.
var _ perch.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to turn captured content into Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms content HTML into Markdown, resolving relative links
// against the scheme and host of pageURL.
func (c *Converter) Convert(html string, pageURL string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", perch.Errorf(perch.EINVALID, "empty HTML input")
	}

	var result string
	var err error
	if domain := origin(pageURL); domain != "" {
		result, err = c.conv.ConvertString(html, converter.WithDomain(domain))
	} else {
		result, err = c.conv.ConvertString(html)
	}
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(result), nil
}

func origin(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
