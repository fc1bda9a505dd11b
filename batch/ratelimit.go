package batch

import (
	"context"
	"strings"
	"sync"

	"github.com/wizperch/perch"
	"golang.org/x/time/rate"
)

var _ perch.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces requests per site with one token bucket per host.
// Hosts differing only in case or a leading "www." share a bucket.
type DomainLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	every   rate.Limit
}

// NewDomainLimiter allows perSecond requests per second to each site, with
// no burst.
func NewDomainLimiter(perSecond float64) *DomainLimiter {
	return &DomainLimiter{
		buckets: make(map[string]*rate.Limiter),
		every:   rate.Limit(perSecond),
	}
}

// Wait blocks until a request to host may proceed or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	return d.bucket(siteKey(host)).Wait(ctx)
}

func (d *DomainLimiter) bucket(key string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.buckets[key]
	if !ok {
		b = rate.NewLimiter(d.every, 1)
		d.buckets[key] = b
	}
	return b
}

func siteKey(host string) string {
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}
