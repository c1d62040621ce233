// Package scrape contains the run orchestration: the per-page retry
// controller and the category/page iteration that aggregates extracted
// records into one table.
package scrape

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/promo-watch/promoscrape/internal/engine"
	"github.com/promo-watch/promoscrape/internal/extract"
	"github.com/promo-watch/promoscrape/internal/markup"
	"github.com/promo-watch/promoscrape/internal/sites"
	"github.com/promo-watch/promoscrape/pkg/models"
)

// State is the retry controller's position in its page state machine.
type State string

const (
	StatePending  State = "pending"
	StateRetrying State = "retrying"
	StateFetched  State = "fetched"
	StateFailed   State = "failed"
)

// PageResult is the terminal result of one page attempt cycle. A page
// is the atomic unit of retry: fetch, parse, locate containers, and
// extract travel together.
type PageResult struct {
	URL      string
	Records  []models.Record
	Attempts int
	State    State
	// Path records the state transitions taken, starting at pending.
	Path []State
	// NoRecords marks a structurally empty page: the listing container
	// was absent or held no items. This is the end-of-pagination
	// signal, not a fault, and is never retried.
	NoRecords bool
	// MaxPageHint is the highest page number advertised by the page's
	// pagination controls (1 when none). Advisory only.
	MaxPageHint int
	Err         error
}

// Controller wraps a single page visit with bounded retry and a fixed
// delay between attempts. Transient fetch failures are retried up to
// the attempt ceiling; a structurally empty page is terminal after one
// attempt because it signals the end of pagination rather than a
// fault. Conflating the two would either retry forever past the last
// page or abandon a category on a network blip.
type Controller struct {
	Fetcher engine.Fetcher
	Site    sites.Site
	// Source stamps every extracted record with where it came from.
	Source      string
	MaxAttempts int
	Delay       time.Duration
}

// Attempt runs the fetch+parse+extract cycle for url until it reaches
// a terminal state. It never returns a mid-cycle error to the caller;
// faults are reflected in the result.
func (c *Controller) Attempt(ctx context.Context, url string) PageResult {
	res := PageResult{URL: url, State: StatePending, Path: []State{StatePending}, MaxPageHint: 1}

	maxAttempts := c.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	for res.Attempts < maxAttempts {
		if err := ctx.Err(); err != nil {
			res.State = StateFailed
			res.Path = append(res.Path, StateFailed)
			res.Err = err
			return res
		}

		res.Attempts++
		html, err := c.Fetcher.Fetch(ctx, url)
		if err == nil {
			return c.finish(&res, html)
		}

		res.Err = err
		if !engine.IsRetryable(err) || res.Attempts >= maxAttempts {
			log.Warn().Str("url", url).Int("attempts", res.Attempts).Err(err).Msg("page failed")
			res.State = StateFailed
			res.Path = append(res.Path, StateFailed)
			return res
		}

		log.Debug().
			Str("url", url).
			Int("attempt", res.Attempts).
			Dur("delay", c.Delay).
			Err(err).
			Msg("retrying page")
		res.State = StateRetrying
		res.Path = append(res.Path, StateRetrying)

		if !sleep(ctx, c.Delay) {
			res.State = StateFailed
			res.Path = append(res.Path, StateFailed)
			res.Err = ctx.Err()
			return res
		}
	}

	res.State = StateFailed
	res.Path = append(res.Path, StateFailed)
	return res
}

// finish parses the fetched markup and extracts the page's records.
// Parse failures and absent containers both resolve to a terminal
// result, never to another fetch.
func (c *Controller) finish(res *PageResult, html string) PageResult {
	doc, err := markup.Parse(html)
	if err != nil {
		res.State = StateFailed
		res.Path = append(res.Path, StateFailed)
		res.Err = err
		return *res
	}

	res.MaxPageHint = extract.MaxPage(doc.FindAll(c.Site.PaginationSelector))

	container := doc.Find(c.Site.ContainerSelector)
	if !container.Ok() {
		res.State = StateFailed
		res.Path = append(res.Path, StateFailed)
		res.NoRecords = true
		res.Err = nil
		return *res
	}

	items := container.FindAll(c.Site.ItemSelector)
	if len(items) == 0 {
		res.State = StateFailed
		res.Path = append(res.Path, StateFailed)
		res.NoRecords = true
		res.Err = nil
		return *res
	}

	res.Records = make([]models.Record, 0, len(items))
	for _, item := range items {
		values := c.Site.Listing.Extract(item)
		res.Records = append(res.Records, sites.RecordFromValues(values, c.Source))
	}

	res.State = StateFetched
	res.Path = append(res.Path, StateFetched)
	res.Err = nil
	return *res
}

// sleep waits for d or until ctx is done, reporting whether the full
// delay elapsed. The timer keeps the wait local to this goroutine so
// concurrent page fetches are never blocked by one page's backoff.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
