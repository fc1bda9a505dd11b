// Package rod provides a perch.Fetcher that renders pages in headless Chrome,
// for sites that build their content or comment threads with JavaScript.
package rod

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/wizperch/perch"
)

// DefaultFetchTimeout bounds a single page load.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements perch.Fetcher at compile time.
var _ perch.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
	settle   time.Duration
	closed   atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the timeout applied to each Fetch call.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithSettle waits after the load event until the DOM has not changed for d,
// so lazily injected comment threads are present in the captured HTML.
func WithSettle(d time.Duration) Option {
	return func(f *Fetcher) {
		f.settle = d
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}

	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = l
	return f, nil
}

// LauncherPID returns the process ID of the launched browser.
func (f *Fetcher) LauncherPID() int {
	return f.launcher.PID()
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", perch.Errorf(perch.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	if f.settle > 0 {
		if err := page.WaitDOMStable(f.settle, 0); err != nil {
			return "", err
		}
	}

	return page.HTML()
}

// Close releases browser resources and stops the browser process.
// Calling Close more than once is a no-op.
func (f *Fetcher) Close() error {
	if f.closed.Swap(true) {
		return nil
	}
	err := f.browser.Close()
	f.launcher.Kill()
	f.launcher.Cleanup()
	return err
}
