package readability

import (
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/wizperch/perch"
)

// Ensure Extractor implements perch.Extractor at compile time.
var _ perch.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability as a reference extractor for comparisons.
type Extractor struct {
	pageURL *url.URL
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// WithPageURL returns a copy of e that resolves relative links against
// pageURL. An unparsable URL is ignored.
func (e *Extractor) WithPageURL(pageURL string) *Extractor {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return &Extractor{}
	}
	return &Extractor{pageURL: u}
}

// Name identifies the extractor in comparisons.
func (e *Extractor) Name() string {
	return "readability"
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*perch.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, perch.Errorf(perch.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), e.pageURL)
	if err != nil {
		return nil, err
	}

	return &perch.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
		Text:        strings.TrimSpace(article.TextContent),
	}, nil
}
