package gemini

import (
	"context"

	"github.com/wizperch/perch"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

// TokenizerModel is the local tokenizer used when none is named.
const TokenizerModel = "gemini-2.0-flash"

var _ perch.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens locally, without calling the API.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter loads the tokenizer for model, or TokenizerModel when empty.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = TokenizerModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, perch.Errorf(perch.EINVALID, "tokenizer %s: %v", model, err)
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens returns the number of tokens text encodes to as one user turn.
func (tc *TokenCounter) CountTokens(_ context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, nil)
	if err != nil {
		return 0, err
	}
	return int(result.TotalTokens), nil
}
