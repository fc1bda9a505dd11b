// Package batch captures lists of pages. It coordinates fetching,
// extraction, conversion, optional summarization and storage of
// pages and their comments.
package batch

import (
	"context"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/wizperch/perch"
	"github.com/wizperch/perch/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages captured in parallel when
// Capturer.Concurrency is not set.
const DefaultConcurrency = 4

// Capturer orchestrates capturing pages into storage.
//
// Summarizer, TokenCounter, RateLimiter and Filter are optional.
type Capturer struct {
	Fetcher      perch.Fetcher
	Extractor    perch.PageExtractor
	Converter    perch.Converter
	Pages        perch.PageService
	Comments     perch.CommentService
	Summarizer   perch.Summarizer
	TokenCounter perch.TokenCounter
	RateLimiter  perch.DomainLimiter
	Filter       *bloom.Filter
	Concurrency  int
	RetryDelays  []time.Duration
}

// Result holds the outcome of a capture run.
type Result struct {
	Saved    int
	Failed   int
	Skipped  int
	Comments int
	Bytes    int
	Tokens   int

	// Pages holds the saved pages in input order.
	Pages []*perch.Page
}

// ProgressEvent reports progress during a capture run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressSkipped
	ProgressFinished
)

// ProgressFunc is a callback for reporting capture progress.
type ProgressFunc func(event ProgressEvent)

// captureResult holds the outcome of processing a single URL.
type captureResult struct {
	position int
	url      string
	page     *perch.Page
	comments []*perch.Comment
	skipped  bool
	err      error
}

// Capture fetches, extracts and stores every URL. Per-URL failures are
// counted in the result rather than returned; the returned error is
// reserved for invalid input and context cancellation.
func (c *Capturer) Capture(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	if len(urls) == 0 {
		return &Result{}, nil
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan captureResult, len(urls))

	var completed atomic.Int64
	total := len(urls)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	// Dedup happens up front so the skip decision does not depend on
	// worker scheduling.
	skip := make([]bool, len(urls))
	if c.Filter != nil {
		for i, u := range urls {
			skip[i] = c.Filter.Seen(u)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range urls {
			if skip[i] {
				resultCh <- captureResult{position: i, url: u, skipped: true}
				continue
			}
			g.Go(func() error {
				resultCh <- c.processURL(gctx, i, u)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]captureResult, len(urls))
	var result Result
	for r := range resultCh {
		n := int(completed.Add(1))
		results[r.position] = r

		event := ProgressEvent{Completed: n, Total: total, URL: r.url}
		switch {
		case r.skipped:
			result.Skipped++
			event.Type = ProgressSkipped
		case r.err != nil:
			result.Failed++
			event.Type = ProgressFailed
			event.Error = r.err
		default:
			event.Type = ProgressCompleted
		}
		if progress != nil {
			progress(event)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Storage happens sequentially in input order.
	for _, r := range results {
		if r.skipped || r.err != nil {
			continue
		}
		if err := c.save(ctx, r.page, r.comments); err != nil {
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, Completed: total, Total: total, URL: r.url, Error: err})
			}
			continue
		}

		result.Saved++
		result.Comments += len(r.comments)
		result.Bytes += len(r.page.Markdown)
		result.Pages = append(result.Pages, r.page)
		if c.TokenCounter != nil {
			if tokens, err := c.TokenCounter.CountTokens(ctx, r.page.Markdown); err == nil {
				result.Tokens += tokens
			}
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return &result, nil
}

// processURL fetches and processes a single URL.
func (c *Capturer) processURL(ctx context.Context, position int, rawURL string) captureResult {
	result := captureResult{position: position, url: rawURL}

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		result.err = perch.Errorf(perch.EINVALID, "invalid URL: %s", rawURL)
		return result
	}

	if c.RateLimiter != nil {
		if err := c.RateLimiter.Wait(ctx, u.Host); err != nil {
			result.err = err
			return result
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, rawURL, c.Fetcher.Fetch, nil, delays)
	if err != nil {
		result.err = err
		return result
	}

	capture, err := c.Extractor.ExtractPage(html, rawURL)
	if err != nil {
		result.err = err
		return result
	}

	page, err := c.pageFromCapture(ctx, capture)
	if err != nil {
		result.err = err
		return result
	}

	result.page = page
	result.comments = capture.Comments
	return result
}

// pageFromCapture converts and optionally summarizes a capture.
// A failed summary leaves the page without a passage instead of failing it.
func (c *Capturer) pageFromCapture(ctx context.Context, capture *perch.Capture) (*perch.Page, error) {
	page := &perch.Page{
		URL:         capture.URL,
		Title:       capture.Title,
		Description: capture.Description,
		Favicon:     capture.Favicon,
		Keywords:    capture.Keywords,
		Content:     capture.Text,
		Strategy:    capture.Strategy,
	}

	if capture.ContentHTML != "" {
		markdown, err := c.Converter.Convert(capture.ContentHTML, capture.URL)
		if err != nil {
			return nil, fmt.Errorf("convert %s: %w", capture.URL, err)
		}
		page.Markdown = markdown
	}

	if c.Summarizer != nil && page.Content != "" {
		if summary, err := c.Summarizer.Summarize(ctx, page); err == nil {
			page.Passage = summary.Passage
			page.Tags = summary.Tags
		}
	}

	return page, nil
}

// save upserts the page and replaces its comments.
func (c *Capturer) save(ctx context.Context, page *perch.Page, comments []*perch.Comment) error {
	if err := c.Pages.UpsertPage(ctx, page); err != nil {
		return fmt.Errorf("save page %s: %w", page.URL, err)
	}
	if c.Comments == nil {
		return nil
	}
	if err := c.Comments.ReplaceComments(ctx, page.ID, comments); err != nil {
		return fmt.Errorf("replace comments %s: %w", page.URL, err)
	}
	return nil
}
