package batch

import (
	"unicode/utf8"

	"github.com/wizperch/perch"
)

// Comparison is one extractor's output for a page.
type Comparison struct {
	Name   string
	Title  string
	Length int // runes of extracted text
	Text   string
	Err    error
}

// Compare runs every extractor over the same HTML. The result follows
// the order of extractors.
func Compare(rawHTML string, extractors ...perch.Extractor) []Comparison {
	out := make([]Comparison, 0, len(extractors))
	for _, e := range extractors {
		c := Comparison{Name: e.Name()}
		result, err := e.Extract(rawHTML)
		if err != nil {
			c.Err = err
		} else {
			c.Title = result.Title
			c.Text = result.Text
			c.Length = utf8.RuneCountInString(result.Text)
		}
		out = append(out, c)
	}
	return out
}

// RenderingAddsContent compares text extracted from plain HTTP HTML with
// text extracted from browser-rendered HTML. It reports true when the
// rendered text is more than 50% longer, or when either extraction fails.
func RenderingAddsContent(httpHTML, renderedHTML string, extractor perch.Extractor) bool {
	httpResult, err := extractor.Extract(httpHTML)
	if err != nil {
		return true
	}
	renderedResult, err := extractor.Extract(renderedHTML)
	if err != nil {
		return true
	}

	httpLen := utf8.RuneCountInString(httpResult.Text)
	renderedLen := utf8.RuneCountInString(renderedResult.Text)

	if httpLen == 0 && renderedLen > 0 {
		return true
	}
	return float64(renderedLen) > float64(httpLen)*1.5
}
