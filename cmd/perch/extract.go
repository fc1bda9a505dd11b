package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wizperch/perch"
	"github.com/wizperch/perch/goquery"
)

// explainBlocks is how many scored blocks extract --explain lists.
const explainBlocks = 5

// captureOutput is the JSON shape printed by extract --json.
type captureOutput struct {
	URL         string           `json:"url,omitempty"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Favicon     string           `json:"favicon,omitempty"`
	Keywords    []string         `json:"keywords,omitempty"`
	Strategy    perch.Strategy   `json:"strategy"`
	Text        string           `json:"text"`
	Markdown    string           `json:"markdown,omitempty"`
	Containers  int              `json:"commentContainers"`
	Comments    []*perch.Comment `json:"comments"`
}

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	html, pageURL, err := loadSource(deps, c.Source)
	if err != nil {
		return fail(deps, err)
	}

	capture, err := deps.Extractor.ExtractPage(html, pageURL)
	if err != nil {
		return fail(deps, err)
	}

	var markdown string
	if (c.Markdown || c.JSON) && capture.ContentHTML != "" {
		markdown, err = deps.Converter.Convert(capture.ContentHTML, pageURL)
		if err != nil {
			return fail(deps, err)
		}
	}

	if c.JSON {
		comments := capture.Comments
		if comments == nil {
			comments = []*perch.Comment{}
		}
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(captureOutput{
			URL:         capture.URL,
			Title:       capture.Title,
			Description: capture.Description,
			Favicon:     capture.Favicon,
			Keywords:    capture.Keywords,
			Strategy:    capture.Strategy,
			Text:        capture.Text,
			Markdown:    markdown,
			Containers:  capture.Containers,
			Comments:    comments,
		})
	}

	if capture.Title != "" {
		fmt.Fprintf(deps.Stdout, "# %s\n\n", capture.Title)
	}
	switch {
	case capture.Strategy == perch.StrategyNone:
		fmt.Fprintln(deps.Stderr, "No main content found.")
	case c.Markdown:
		fmt.Fprintln(deps.Stdout, markdown)
	default:
		fmt.Fprintln(deps.Stdout, capture.Text)
	}

	if c.Comments {
		printComments(deps, capture.Comments)
	}
	if c.Explain {
		return explain(deps, html, capture)
	}
	return nil
}

// explain prints how the content was chosen: the winning strategy and the
// best candidates of the longest-block scorer.
func explain(deps *Dependencies, html string, capture *perch.Capture) error {
	doc, err := goquery.Parse(html)
	if err != nil {
		return fail(deps, err)
	}

	strategy := string(capture.Strategy)
	if strategy == "" {
		strategy = "none"
	}
	fmt.Fprintf(deps.Stdout, "\nStrategy: %s\nComment containers: %d\n", strategy, capture.Containers)

	blocks := deps.Engine.ScoreBlocks(doc.Root())
	fmt.Fprintf(deps.Stdout, "Scored blocks (%d):\n", len(blocks))
	for i, b := range blocks[:min(explainBlocks, len(blocks))] {
		fmt.Fprintf(deps.Stdout, "  %d. %-40s score=%.1f text=%d\n", i+1, perch.Describe(b.Node), b.Score, b.TextLength)
	}
	return nil
}

// printComments prints comments as a numbered list.
func printComments(deps *Dependencies, comments []*perch.Comment) {
	fmt.Fprintf(deps.Stdout, "\nComments (%d):\n", len(comments))
	for i, c := range comments {
		author := c.Author
		if author == "" {
			author = "anonymous"
		}
		fmt.Fprintf(deps.Stdout, "  %d. %s", i+1, author)
		if c.Likes > 0 {
			fmt.Fprintf(deps.Stdout, " (+%d)", c.Likes)
		}
		fmt.Fprintf(deps.Stdout, "\n     %s\n", strings.ReplaceAll(c.Text, "\n", " "))
	}
}
