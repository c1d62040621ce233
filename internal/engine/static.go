package engine

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/promo-watch/promoscrape/internal/ratelimit"
)

// StaticFetcher retrieves pages over plain HTTP. It is sufficient for
// targets that ship their listing markup server-side, and it is what
// tests point at an httptest server.
type StaticFetcher struct {
	client    *http.Client
	userAgent string
	limiter   ratelimit.Limiter
}

// NewStaticFetcher builds a StaticFetcher. A nil client gets a default
// with the given timeout and keep-alive pooling.
func NewStaticFetcher(client *http.Client, timeout time.Duration, userAgent string, limiter ratelimit.Limiter) *StaticFetcher {
	if client == nil {
		client = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	return &StaticFetcher{client: client, userAgent: userAgent, limiter: limiter}
}

// Name identifies the fetcher in logs and outcomes.
func (s *StaticFetcher) Name() string {
	return "static"
}

// Fetch performs a GET and returns the response body as raw markup.
func (s *StaticFetcher) Fetch(ctx context.Context, url string) (string, error) {
	start := time.Now()

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx, url); err != nil {
			return "", err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &FetchError{Code: ErrCodeNetwork, URL: url, Underlying: err, Retry: false}
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", classifyFetch(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", classifyStatus(url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classifyFetch(url, err)
	}

	log.Debug().
		Str("url", url).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("page fetched")

	return string(body), nil
}
