package mock

import "github.com/wizperch/perch"

var _ perch.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of perch.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*perch.ExtractResult, error)
	NameFn    func() string
}

func (e *Extractor) Extract(html string) (*perch.ExtractResult, error) {
	return e.ExtractFn(html)
}

func (e *Extractor) Name() string {
	return e.NameFn()
}

var _ perch.PageExtractor = (*PageExtractor)(nil)

// PageExtractor is a mock implementation of perch.PageExtractor.
type PageExtractor struct {
	ExtractPageFn func(rawHTML string, pageURL string) (*perch.Capture, error)
}

func (e *PageExtractor) ExtractPage(rawHTML string, pageURL string) (*perch.Capture, error) {
	return e.ExtractPageFn(rawHTML, pageURL)
}

var _ perch.Converter = (*Converter)(nil)

// Converter is a mock implementation of perch.Converter.
type Converter struct {
	ConvertFn func(html string, pageURL string) (string, error)
}

func (c *Converter) Convert(html string, pageURL string) (string, error) {
	return c.ConvertFn(html, pageURL)
}
