package extract

import (
	"regexp"
	"strconv"

	"github.com/promo-watch/promoscrape/internal/markup"
)

var pageToken = regexp.MustCompile(`page=(\d+)`)

// MaxPage inspects pagination control fragments and returns the highest
// page number embedded in their link targets (`...page=<n>...`).
// Controls without a recognizable token are ignored; if none yields a
// number, 1 is returned. The result is an upper-bound hint only: the
// orchestrator still stops at the first page with zero records.
func MaxPage(controls []markup.Fragment) int {
	max := 0
	for _, c := range controls {
		link := c.Find("a")
		if !link.Ok() {
			continue
		}
		href, ok := link.Attr("href")
		if !ok {
			continue
		}
		m := pageToken.FindStringSubmatch(href)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	if max == 0 {
		return 1
	}
	return max
}
