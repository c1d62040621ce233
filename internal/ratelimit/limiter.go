// Package ratelimit provides per-domain request throttling so a scrape
// run never hammers a single host, whichever fetch engine is in use.
package ratelimit

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter gates outgoing page fetches.
type Limiter interface {
	// Wait blocks until a fetch of urlStr may proceed, or the context
	// is cancelled.
	Wait(ctx context.Context, urlStr string) error
}

// DomainLimiter applies a token-bucket limit per host.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	perHost  rate.Limit
	burst    int
}

// NewDomainLimiter builds a limiter allowing requestsPerSecond with the
// given burst per host.
func NewDomainLimiter(requestsPerSecond float64, burst int) *DomainLimiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 2.0
	}
	if burst <= 0 {
		burst = 4
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		perHost:  rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

// Wait blocks until the host of urlStr has budget for one request.
// Unparseable URLs pass through and fail at fetch time instead.
func (dl *DomainLimiter) Wait(ctx context.Context, urlStr string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return nil
	}
	return dl.limiterFor(u.Host).Wait(ctx)
}

func (dl *DomainLimiter) limiterFor(host string) *rate.Limiter {
	dl.mu.Lock()
	defer dl.mu.Unlock()
	if l, ok := dl.limiters[host]; ok {
		return l
	}
	l := rate.NewLimiter(dl.perHost, dl.burst)
	dl.limiters[host] = l
	return l
}
