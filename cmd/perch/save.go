package main

import (
	"fmt"

	"github.com/wizperch/perch"
	"github.com/wizperch/perch/batch"
	"github.com/wizperch/perch/bloom"
)

// Run executes the save command.
func (c *SaveCmd) Run(deps *Dependencies) error {
	if len(c.URLs) == 0 {
		return fail(deps, perch.Errorf(perch.EINVALID, "at least one URL required"))
	}
	for _, u := range c.URLs {
		if !isURL(u) {
			return fail(deps, perch.Errorf(perch.EINVALID, "%q is not an http(s) URL", u))
		}
	}

	fetcher, err := deps.Fetcher()
	if err != nil {
		return fail(deps, err)
	}

	capturer := &batch.Capturer{
		Fetcher:      fetcher,
		Extractor:    deps.Extractor,
		Converter:    deps.Converter,
		Pages:        deps.Pages,
		Comments:     deps.Comments,
		Summarizer:   deps.Summarizer,
		TokenCounter: deps.TokenCounter,
		Filter:       bloom.NewFilter(uint(len(c.URLs)), 0.001),
		Concurrency:  c.Concurrency,
		RetryDelays:  deps.RetryDelays,
	}
	if c.Rate > 0 {
		capturer.RateLimiter = batch.NewDomainLimiter(c.Rate)
	}

	progress := func(event batch.ProgressEvent) {
		switch event.Type {
		case batch.ProgressCompleted:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] %s\n", event.Completed, event.Total, batch.TruncateURL(event.URL, 60))
		case batch.ProgressSkipped:
			fmt.Fprintf(deps.Stderr, "  skip duplicate %s\n", event.URL)
		case batch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  fail %s: %s\n", event.URL, perch.ErrorMessage(event.Error))
		}
	}

	result, err := capturer.Capture(deps.Ctx, c.URLs, progress)
	if err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Saved: %s\n", result.Summary())
	if result.Saved == 0 && result.Failed > 0 {
		return perch.Errorf(perch.EINTERNAL, "no pages saved")
	}
	return nil
}
