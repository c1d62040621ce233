package scrape

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/promo-watch/promoscrape/internal/config"
	"github.com/promo-watch/promoscrape/internal/engine"
	"github.com/promo-watch/promoscrape/internal/sites"
	"github.com/promo-watch/promoscrape/pkg/models"
)

// Options tunes one scrape run.
type Options struct {
	// MaxPagesPerCategory caps the page loop per category; 0 means
	// paginate until the first structurally empty page.
	MaxPagesPerCategory int
	// MaxAttempts is the per-page fetch attempt ceiling.
	MaxAttempts int
	// Delay is the fixed wait between attempts of the same page.
	Delay time.Duration
	// Concurrency bounds how many categories are scraped in parallel.
	// Pages within a category stay sequential because the stop signal
	// is data-dependent.
	Concurrency int
	// TotalPageLimit caps pages fetched across the whole run; 0 means
	// unlimited. In-flight pages finish, no new fetch is scheduled.
	TotalPageLimit int
	// OnOutcome, when set, observes every (category, page) outcome as
	// it is produced.
	OnOutcome func(models.Outcome)
}

// Orchestrator iterates categories and pages for one site profile,
// delegating every page to the retry controller and aggregating the
// extracted rows into a single in-memory table.
type Orchestrator struct {
	profile config.Profile
	site    sites.Site
	fetcher engine.Fetcher
	opts    Options

	pagesScheduled int64
}

// New builds an Orchestrator.
func New(profile config.Profile, site sites.Site, fetcher engine.Fetcher, opts Options) *Orchestrator {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	return &Orchestrator{profile: profile, site: site, fetcher: fetcher, opts: opts}
}

// Run scrapes every category of the profile and returns the aggregated
// record table, the per-page outcomes, and run statistics. A failed
// page degrades its category's output; it never aborts the run.
func (o *Orchestrator) Run(ctx context.Context) ([]models.Record, []models.Outcome, models.RunStats) {
	agg := &aggregator{}
	start := time.Now()

	sem := make(chan struct{}, o.opts.Concurrency)
	var wg sync.WaitGroup
	for _, category := range o.profile.Categories {
		wg.Add(1)
		sem <- struct{}{}
		go func(category string) {
			defer wg.Done()
			defer func() { <-sem }()
			o.scrapeCategory(ctx, category, agg)
		}(category)
	}
	wg.Wait()

	stats := agg.stats
	stats.StartTime = start
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(start)
	stats.Records = len(agg.records)

	log.Info().
		Int("records", stats.Records).
		Int("pages", stats.PagesVisited).
		Int("failed_pages", stats.PagesFailed).
		Int("retries", stats.Retries).
		Dur("elapsed", stats.Duration).
		Msg("scrape run finished")

	return agg.records, agg.outcomes, stats
}

func (o *Orchestrator) scrapeCategory(ctx context.Context, category string, agg *aggregator) {
	ctrl := &Controller{
		Fetcher:     o.fetcher,
		Site:        o.site,
		Source:      o.profile.BaseURL,
		MaxAttempts: o.opts.MaxAttempts,
		Delay:       o.opts.Delay,
	}

	for page := 1; ; page++ {
		if o.opts.MaxPagesPerCategory > 0 && page > o.opts.MaxPagesPerCategory {
			return
		}
		if ctx.Err() != nil {
			return
		}
		if !o.acquirePageBudget() {
			log.Debug().Str("category", category).Msg("total page limit reached")
			return
		}

		url := o.profile.PageURL(category, page)
		res := ctrl.Attempt(ctx, url)

		outcome := models.Outcome{
			Category:     category,
			Page:         page,
			RecordsFound: len(res.Records),
			Attempts:     res.Attempts,
			Status:       statusOf(res),
		}
		agg.add(res, outcome)
		if o.opts.OnOutcome != nil {
			o.opts.OnOutcome(outcome)
		}

		if page == 1 && res.MaxPageHint > 1 {
			// Advisory only; the empty-page signal remains authoritative.
			log.Debug().
				Str("category", category).
				Int("max_page_hint", res.MaxPageHint).
				Msg("pagination hint resolved")
		}

		switch outcome.Status {
		case models.StatusNoRecords:
			log.Debug().Str("category", category).Int("page", page).Msg("end of pagination")
			return
		case models.StatusFailed:
			// Without this page there is no trustworthy end-of-pagination
			// signal for the category; report and move on.
			log.Warn().Str("category", category).Int("page", page).Err(res.Err).Msg("category degraded")
			return
		}
	}
}

// acquirePageBudget reserves one page fetch against the run-wide
// ceiling.
func (o *Orchestrator) acquirePageBudget() bool {
	if o.opts.TotalPageLimit <= 0 {
		return true
	}
	return atomic.AddInt64(&o.pagesScheduled, 1) <= int64(o.opts.TotalPageLimit)
}

func statusOf(res PageResult) models.OutcomeStatus {
	switch {
	case res.NoRecords:
		return models.StatusNoRecords
	case res.State == StateFetched:
		return models.StatusSuccess
	default:
		return models.StatusFailed
	}
}

// aggregator collects rows and outcomes from concurrent category
// workers. Rows carry category and source metadata, so completion
// order only affects row position, which is not significant.
type aggregator struct {
	mu       sync.Mutex
	records  []models.Record
	outcomes []models.Outcome
	stats    models.RunStats
}

func (a *aggregator) add(res PageResult, outcome models.Outcome) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records = append(a.records, res.Records...)
	a.outcomes = append(a.outcomes, outcome)
	a.stats.PagesVisited++
	if outcome.Status == models.StatusFailed {
		a.stats.PagesFailed++
	}
	if res.Attempts > 1 {
		a.stats.Retries += res.Attempts - 1
	}
}
