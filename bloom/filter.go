// Package bloom deduplicates page URLs with a Bloom filter.
package bloom

import (
	"net/url"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter remembers URLs that have already been queued for capture.
// Filter is safe for concurrent use.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a URL to the filter.
func (f *Filter) Add(rawURL string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.f.AddString(Normalize(rawURL))
}

// Test returns true if the URL might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestString(Normalize(rawURL))
}

// Seen adds the URL and reports whether it was probably present already.
func (f *Filter) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestAndAddString(Normalize(rawURL))
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(f.f.ApproximatedSize())
}

// Normalize maps equivalent spellings of a page URL to one key: the scheme
// and host are lower-cased, the fragment is dropped and a trailing slash on
// a non-root path is removed. Unparsable input is returned trimmed.
func Normalize(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""
	if len(u.Path) > 1 {
		u.Path = strings.TrimSuffix(u.Path, "/")
		u.RawPath = ""
	}
	if u.Path == "/" {
		u.Path = ""
	}
	return u.String()
}
