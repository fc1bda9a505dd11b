package mock

import (
	"context"

	"github.com/wizperch/perch"
)

var _ perch.Summarizer = (*Summarizer)(nil)

// Summarizer is a mock implementation of perch.Summarizer.
type Summarizer struct {
	SummarizeFn func(ctx context.Context, page *perch.Page) (*perch.Summary, error)
}

func (s *Summarizer) Summarize(ctx context.Context, page *perch.Page) (*perch.Summary, error) {
	return s.SummarizeFn(ctx, page)
}

var _ perch.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of perch.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (c *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return c.CountTokensFn(ctx, text)
}
