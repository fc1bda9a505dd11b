package perch

import "context"

// Summary is a short machine-written description of a page.
type Summary struct {
	Passage string   `json:"passage"`
	Tags    []string `json:"tags"`
}

// Summarizer writes a passage and tags for a captured page.
type Summarizer interface {
	// Summarize returns a summary of the page content.
	// Returns EINVALID if the page has no content.
	Summarize(ctx context.Context, page *Page) (*Summary, error)
}

// TokenCounter counts tokens in text for a specific model.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
