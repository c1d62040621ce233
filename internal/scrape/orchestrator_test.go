package scrape

import (
	"context"
	"sync"
	"testing"

	"github.com/promo-watch/promoscrape/internal/config"
	"github.com/promo-watch/promoscrape/pkg/models"
)

// mapFetcher serves canned pages by URL; unknown URLs read as the end
// of pagination.
type mapFetcher struct {
	mu    sync.Mutex
	pages map[string]response
	calls map[string]int
}

func newMapFetcher(pages map[string]response) *mapFetcher {
	return &mapFetcher{pages: pages, calls: make(map[string]int)}
}

func (f *mapFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[url]++
	r, ok := f.pages[url]
	if !ok {
		return emptyListingPage, nil
	}
	return r.html, r.err
}

func (f *mapFetcher) Name() string { return "map" }

func (f *mapFetcher) callCount(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

func (f *mapFetcher) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func testProfile() config.Profile {
	return config.Profile{
		BaseURL:    "http://shop.test",
		Categories: []string{"/dairy", "/bakery"},
		PageSuffix: "all?page=",
	}
}

func TestRunAggregatesCategories(t *testing.T) {
	profile := testProfile()
	f := newMapFetcher(map[string]response{
		"http://shop.test/dairy/all?page=1":  {html: listingPage},
		"http://shop.test/bakery/all?page=1": {html: listingPage},
		// page 2 of both categories falls through to the empty page.
	})

	orch := New(profile, testSite(), f, Options{Concurrency: 2})
	records, outcomes, stats := orch.Run(context.Background())

	if len(records) != 4 {
		t.Fatalf("records = %d, want 4", len(records))
	}
	if len(outcomes) != 4 {
		t.Fatalf("outcomes = %d, want 4", len(outcomes))
	}

	byStatus := map[models.OutcomeStatus]int{}
	for _, o := range outcomes {
		byStatus[o.Status]++
	}
	if byStatus[models.StatusSuccess] != 2 || byStatus[models.StatusNoRecords] != 2 {
		t.Errorf("status counts = %v, want 2 success + 2 no_records", byStatus)
	}

	// The empty page stops the category; page 3 is never requested.
	if f.callCount("http://shop.test/dairy/all?page=3") != 0 {
		t.Error("category did not stop at the empty page")
	}
	if stats.PagesVisited != 4 {
		t.Errorf("pages visited = %d, want 4", stats.PagesVisited)
	}
	if stats.Records != 4 {
		t.Errorf("stats.Records = %d, want 4", stats.Records)
	}
}

func TestRunFailedPageDegradesCategoryOnly(t *testing.T) {
	profile := testProfile()
	f := newMapFetcher(map[string]response{
		"http://shop.test/dairy/all?page=1":  {err: terminalErr("http://shop.test/dairy/all?page=1")},
		"http://shop.test/bakery/all?page=1": {html: listingPage},
	})

	orch := New(profile, testSite(), f, Options{Concurrency: 2})
	records, outcomes, stats := orch.Run(context.Background())

	if len(records) != 2 {
		t.Fatalf("records = %d, want 2 (bakery only)", len(records))
	}
	var failed, success int
	for _, o := range outcomes {
		switch o.Status {
		case models.StatusFailed:
			failed++
			if o.Category != "/dairy" {
				t.Errorf("failed category = %s, want /dairy", o.Category)
			}
		case models.StatusSuccess:
			success++
		}
	}
	if failed != 1 || success != 1 {
		t.Errorf("failed = %d success = %d, want 1 and 1", failed, success)
	}
	// A failed page ends its category; page 2 of dairy is never tried.
	if f.callCount("http://shop.test/dairy/all?page=2") != 0 {
		t.Error("category continued past a failed page")
	}
	if stats.PagesFailed != 1 {
		t.Errorf("pages failed = %d, want 1", stats.PagesFailed)
	}
}

func TestRunMaxPagesPerCategory(t *testing.T) {
	profile := config.Profile{
		BaseURL:    "http://shop.test",
		Categories: []string{"/dairy"},
		PageSuffix: "all?page=",
	}
	f := newMapFetcher(map[string]response{
		"http://shop.test/dairy/all?page=1": {html: listingPage},
		"http://shop.test/dairy/all?page=2": {html: listingPage},
		"http://shop.test/dairy/all?page=3": {html: listingPage},
	})

	orch := New(profile, testSite(), f, Options{MaxPagesPerCategory: 2})
	records, outcomes, _ := orch.Run(context.Background())

	if len(outcomes) != 2 {
		t.Fatalf("outcomes = %d, want 2", len(outcomes))
	}
	if len(records) != 4 {
		t.Errorf("records = %d, want 4", len(records))
	}
	if f.callCount("http://shop.test/dairy/all?page=3") != 0 {
		t.Error("page cap ignored")
	}
}

func TestRunTotalPageLimit(t *testing.T) {
	profile := config.Profile{
		BaseURL:    "http://shop.test",
		Categories: []string{"/dairy", "/bakery", "/drinks"},
		PageSuffix: "all?page=",
	}
	pages := map[string]response{}
	for _, c := range profile.Categories {
		pages["http://shop.test"+c+"/all?page=1"] = response{html: listingPage}
	}
	f := newMapFetcher(pages)

	orch := New(profile, testSite(), f, Options{Concurrency: 1, TotalPageLimit: 2})
	_, outcomes, _ := orch.Run(context.Background())

	if len(outcomes) != 2 {
		t.Errorf("outcomes = %d, want 2 (budget of 2 pages)", len(outcomes))
	}
	if f.totalCalls() != 2 {
		t.Errorf("fetches = %d, want 2", f.totalCalls())
	}
}

func TestRunOnOutcomeObservesEveryPage(t *testing.T) {
	profile := testProfile()
	f := newMapFetcher(map[string]response{
		"http://shop.test/dairy/all?page=1":  {html: listingPage},
		"http://shop.test/bakery/all?page=1": {html: listingPage},
	})

	var mu sync.Mutex
	var seen []models.Outcome
	orch := New(profile, testSite(), f, Options{
		Concurrency: 2,
		OnOutcome: func(o models.Outcome) {
			mu.Lock()
			seen = append(seen, o)
			mu.Unlock()
		},
	})
	_, outcomes, _ := orch.Run(context.Background())

	if len(seen) != len(outcomes) {
		t.Errorf("observed %d outcomes, aggregated %d", len(seen), len(outcomes))
	}
}
