package scrape

import (
	"context"

	"github.com/promo-watch/promoscrape/internal/engine"
	"github.com/promo-watch/promoscrape/internal/markup"
	"github.com/promo-watch/promoscrape/internal/sites"
	"github.com/promo-watch/promoscrape/pkg/models"
)

// ScrapeItem fetches one product detail page and extracts the extended
// record. Field absence degrades to sentinels as usual; only the fetch
// itself can fail.
func ScrapeItem(ctx context.Context, fetcher engine.Fetcher, site sites.Site, url, source string) (models.ItemDetail, error) {
	html, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return models.ItemDetail{}, err
	}

	doc, err := markup.Parse(html)
	if err != nil {
		return models.ItemDetail{}, err
	}

	page := doc.Find("html")
	values := site.Detail.Extract(page)
	detail := sites.DetailFromValues(values, source)
	if raw, ok := sites.DescriptionHTML(page); ok {
		detail.DescriptionHTML = raw
	}
	return detail, nil
}
