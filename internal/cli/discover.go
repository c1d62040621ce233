package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promo-watch/promoscrape/internal/extract"
	"github.com/promo-watch/promoscrape/internal/markup"
)

var discoverSite string

var discoverCmd = &cobra.Command{
	Use:   "discover <url>",
	Short: "List category links and the page-count hint of a hub page",
	Long: `Fetches a hub page, filters its links against the site's category
path pattern, and reports the highest page number advertised by the
pagination controls.`,
	Args: cobra.ExactArgs(1),
	RunE: runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)

	discoverCmd.Flags().StringVar(&discoverSite, "site", "tesco", "Site whose category pattern to match")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	url := args[0]

	site, err := siteFor(discoverSite)
	if err != nil {
		return err
	}

	fetcher, cleanup := newFetcher()
	defer cleanup()

	html, err := fetcher.Fetch(cmd.Context(), url)
	if err != nil {
		return fmt.Errorf("fetch hub page: %w", err)
	}
	doc, err := markup.Parse(html)
	if err != nil {
		return fmt.Errorf("parse hub page: %w", err)
	}

	matched := extract.MatchURLs(doc.Links(), site.CategoryPattern)
	seen := make(map[string]bool, len(matched))
	for _, link := range matched {
		cleaned := extract.StripQuery(extract.ResolveURL(url, link))
		if seen[cleaned] {
			continue
		}
		seen[cleaned] = true
		fmt.Println(cleaned)
	}

	maxPage := extract.MaxPage(doc.FindAll(site.PaginationSelector))
	fmt.Printf("categories: %d, max page hint: %d\n", len(seen), maxPage)
	return nil
}
