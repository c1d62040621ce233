package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/promo-watch/promoscrape/pkg/models"
)

func sampleDetail() models.ItemDetail {
	return models.ItemDetail{
		Record: models.Record{
			Name:         "Maslo Tatra 125 g",
			CurrentPrice: "2.19",
			RegularPrice: "2.99",
			Discount:     "2.19 €",
			ValidityDate: "do 24.09.",
			Source:       "tesco",
		},
		Description:     "Čerstvé maslo",
		DescriptionHTML: `<ul><li>Čerstvé maslo</li><li>Chladené</li></ul>`,
		Ingredients:     "smotana, mliečna kultúra",
		Allergens:       models.Sentinel,
		Manufacturer:    "Tatranská mliekareň a.s.",
		Distributor:     models.Sentinel,
		CategoryLink:    "/groceries/en-GB/shop/fresh-food",
	}
}

func TestSaveItemMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "item.md")
	if err := SaveItemMarkdown(sampleDetail(), path); err != nil {
		t.Fatalf("SaveItemMarkdown: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)

	if !strings.HasPrefix(got, "# Maslo Tatra 125 g\n") {
		t.Errorf("missing title heading:\n%s", got)
	}
	if !strings.Contains(got, "- **Current price:** 2.19") {
		t.Error("missing current price line")
	}
	// The description list survives conversion as Markdown bullets.
	if !strings.Contains(got, "- Čerstvé maslo") {
		t.Errorf("description list not converted:\n%s", got)
	}
	if !strings.Contains(got, "## Ingredients") {
		t.Error("missing ingredients section")
	}
	// Sentinel fields are omitted entirely.
	if strings.Contains(got, "Allergens") || strings.Contains(got, models.Sentinel+"\n") {
		t.Errorf("sentinel field leaked into output:\n%s", got)
	}
}

func TestSaveItemMarkdownFallsBackToText(t *testing.T) {
	detail := sampleDetail()
	detail.DescriptionHTML = ""

	path := filepath.Join(t.TempDir(), "item.md")
	if err := SaveItemMarkdown(detail, path); err != nil {
		t.Fatalf("SaveItemMarkdown: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Čerstvé maslo") {
		t.Error("plain-text description missing")
	}
}

func TestCleanHTML(t *testing.T) {
	in := `<div class="promo" style="color:red">
<script>alert(1)</script>
<p data-track="x">Text</p>
<a href="/x" title="t" onclick="evil()">link</a>
<img src="/i.png" alt="pic" width="100">
</div>`
	out, err := CleanHTML(in)
	if err != nil {
		t.Fatalf("CleanHTML: %v", err)
	}
	for _, banned := range []string{"<script", "alert", "class=", "style=", "data-track", "onclick", "width="} {
		if strings.Contains(out, banned) {
			t.Errorf("output still contains %q:\n%s", banned, out)
		}
	}
	for _, kept := range []string{`href="/x"`, `title="t"`, `src="/i.png"`, `alt="pic"`, "Text"} {
		if !strings.Contains(out, kept) {
			t.Errorf("output lost %q:\n%s", kept, out)
		}
	}
}
