package goquery

import (
	"github.com/wizperch/perch"
)

// Ensure Extractor implements the extraction interfaces at compile time.
var (
	_ perch.Extractor     = (*Extractor)(nil)
	_ perch.PageExtractor = (*Extractor)(nil)
)

// Extractor runs the heuristic engine over pages parsed with goquery.
type Extractor struct {
	engine   *perch.Engine
	comments *CommentExtractor
}

// NewExtractor creates an Extractor using engine for content and comment
// section detection.
func NewExtractor(engine *perch.Engine) *Extractor {
	return &Extractor{
		engine:   engine,
		comments: NewCommentExtractor(),
	}
}

// Name identifies the extractor in comparisons.
func (e *Extractor) Name() string {
	return "perch"
}

// Extract returns the title and cleaned main content of rawHTML.
func (e *Extractor) Extract(rawHTML string) (*perch.ExtractResult, error) {
	doc, err := Parse(rawHTML)
	if err != nil {
		return nil, err
	}

	content, err := e.engine.ExtractContent(doc.Root())
	if err != nil {
		return nil, err
	}

	contentHTML, err := Render(content.Node)
	if err != nil {
		return nil, err
	}

	return &perch.ExtractResult{
		Title:       doc.Title(),
		ContentHTML: contentHTML,
		Text:        content.Text,
	}, nil
}

// ExtractPage extracts content, metadata and comments from rawHTML.
func (e *Extractor) ExtractPage(rawHTML string, pageURL string) (*perch.Capture, error) {
	doc, err := Parse(rawHTML)
	if err != nil {
		return nil, err
	}

	extraction, err := e.engine.Extract(doc.Root())
	if err != nil {
		return nil, err
	}

	contentHTML, err := Render(extraction.Content.Node)
	if err != nil {
		return nil, err
	}

	meta := doc.Metadata(pageURL)
	return &perch.Capture{
		URL:         pageURL,
		Title:       meta.Title,
		Description: meta.Description,
		Favicon:     meta.Favicon,
		Keywords:    meta.Keywords,
		Text:        extraction.Content.Text,
		ContentHTML: contentHTML,
		Strategy:    extraction.Content.Strategy,
		Containers:  len(extraction.Comments),
		Comments:    e.comments.Extract(extraction.Comments),
	}, nil
}
