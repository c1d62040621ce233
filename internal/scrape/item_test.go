package scrape

import (
	"context"
	"testing"

	"github.com/promo-watch/promoscrape/internal/extract"
	"github.com/promo-watch/promoscrape/internal/sites"
	"github.com/promo-watch/promoscrape/pkg/models"
)

func detailSite() sites.Site {
	s := testSite()
	s.Detail = extract.Table{
		Fields: []string{"name", "current_price", "regular_price", "discount", "validity_date", sites.FieldDescription},
		Rules: map[string][]extract.Rule{
			"name":                 {{Locate: extract.Text("h1.title")}},
			"current_price":        {{Locate: extract.Text("span.price"), Transform: extract.Before("€")}},
			sites.FieldDescription: {{Locate: extract.Text("div.product-info-block--product-description")}},
		},
	}
	return s
}

func TestScrapeItem(t *testing.T) {
	page := `<html><body>
<h1 class="title">Maslo Tatra 125 g</h1>
<span class="price">2.19 €</span>
<div class="product-info-block--product-description"><b>Čerstvé</b> maslo</div>
</body></html>`
	f := &scriptedFetcher{responses: []response{{html: page}}}

	detail, err := ScrapeItem(context.Background(), f, detailSite(), "http://shop.test/item/1", "test")
	if err != nil {
		t.Fatalf("ScrapeItem: %v", err)
	}
	if detail.Name != "Maslo Tatra 125 g" {
		t.Errorf("name = %q", detail.Name)
	}
	if detail.CurrentPrice != "2.19" {
		t.Errorf("current price = %q", detail.CurrentPrice)
	}
	if detail.Description != "Čerstvé maslo" {
		t.Errorf("description = %q", detail.Description)
	}
	if detail.DescriptionHTML != "<b>Čerstvé</b> maslo" {
		t.Errorf("description html = %q", detail.DescriptionHTML)
	}
	// Fields with no rule on this site degrade to the sentinel.
	if detail.Ingredients != models.Sentinel {
		t.Errorf("ingredients = %q, want sentinel", detail.Ingredients)
	}
	if detail.Source != "test" {
		t.Errorf("source = %q", detail.Source)
	}
}

func TestScrapeItemFetchError(t *testing.T) {
	url := "http://shop.test/item/1"
	f := &scriptedFetcher{responses: []response{{err: terminalErr(url)}}}

	if _, err := ScrapeItem(context.Background(), f, detailSite(), url, "test"); err == nil {
		t.Error("expected fetch error")
	}
}
