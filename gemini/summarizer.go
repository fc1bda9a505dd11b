// Package gemini summarizes captured pages and counts tokens using
// Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wizperch/perch"
	"google.golang.org/genai"
)

// DefaultModel is the model used for summaries and token counts.
const DefaultModel = "gemini-2.5-flash"

// Limits applied to what is sent and kept.
const (
	MaxPromptRunes = 20000
	MaxTags        = 5
)

var _ perch.Summarizer = (*Summarizer)(nil)

// Summarizer implements perch.Summarizer using Google Gemini.
type Summarizer struct {
	client *genai.Client
	model  string
}

// NewSummarizer creates a new Summarizer. An empty model selects DefaultModel.
func NewSummarizer(client *genai.Client, model string) *Summarizer {
	if model == "" {
		model = DefaultModel
	}
	return &Summarizer{client: client, model: model}
}

// Summarize asks the model for a short passage and topic tags describing page.
func (s *Summarizer) Summarize(ctx context.Context, page *perch.Page) (*perch.Summary, error) {
	if page == nil || strings.TrimSpace(page.Content) == "" {
		return nil, perch.Errorf(perch.EINVALID, "page content required")
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(page)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini summarize: %w", err)
	}
	if result == nil {
		return nil, perch.Errorf(perch.EINTERNAL, "gemini returned nil result")
	}

	return ParseSummary(result.Text())
}

// BuildConfig returns the GenerateContentConfig for summary requests.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You summarize saved web pages. Write a passage of two or three sentences in the language of the page, and up to five short lowercase topic tags. Describe only what the page says.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"passage": {Type: genai.TypeString},
				"tags": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
			},
			Required: []string{"passage", "tags"},
		},
	}
}

// BuildUserPrompt builds the user prompt for page. The content is cut to
// MaxPromptRunes.
func BuildUserPrompt(page *perch.Page) string {
	var sb strings.Builder
	sb.WriteString("<page>\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", page.Title)
	fmt.Fprintf(&sb, "<source>%s</source>\n", page.URL)
	if page.Description != "" {
		fmt.Fprintf(&sb, "<description>%s</description>\n", page.Description)
	}
	fmt.Fprintf(&sb, "<content>%s</content>\n", truncateRunes(page.Content, MaxPromptRunes))
	sb.WriteString("</page>")
	return sb.String()
}

// ParseSummary decodes a JSON model response into a Summary. Tags are
// lowercased, deduplicated and limited to MaxTags.
func ParseSummary(raw string) (*perch.Summary, error) {
	var summary perch.Summary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		return nil, perch.Errorf(perch.EINTERNAL, "invalid summary response: %v", err)
	}
	summary.Passage = strings.TrimSpace(summary.Passage)
	if summary.Passage == "" {
		return nil, perch.Errorf(perch.EINTERNAL, "summary response has no passage")
	}

	seen := make(map[string]bool)
	tags := make([]string, 0, len(summary.Tags))
	for _, tag := range summary.Tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
		if len(tags) == MaxTags {
			break
		}
	}
	summary.Tags = tags
	return &summary, nil
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
