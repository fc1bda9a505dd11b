package trafilatura

import (
	"bytes"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/wizperch/perch"
	"golang.org/x/net/html"
)

// Ensure Extractor implements perch.Extractor at compile time.
var _ perch.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura. It serves as a reference extractor when
// comparing results against the heuristic engine.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor. Comments are excluded so that
// content text is comparable with the engine's cleaned text.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback:  true,
			ExcludeComments: true,
		},
	}
}

// Name identifies the extractor in comparisons.
func (e *Extractor) Name() string {
	return "trafilatura"
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*perch.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, perch.Errorf(perch.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &perch.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
		Text:        strings.TrimSpace(result.ContentText),
	}, nil
}

func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
