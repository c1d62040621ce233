package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/promo-watch/promoscrape/internal/output"
	"github.com/promo-watch/promoscrape/internal/scrape"
)

var (
	itemSite   string
	itemOutput string
)

var itemCmd = &cobra.Command{
	Use:   "item <url>",
	Short: "Scrape a single product detail page",
	Long: `Fetches one product page and extracts the extended record:
prices, discount terms, description, ingredients, allergens, and
manufacturer details. Missing fields degrade to "-".`,
	Example: `  # Print the detail record as JSON
  promoscrape item https://potravinydomov.itesco.sk/groceries/sk-SK/products/123

  # Save a Markdown fact sheet
  promoscrape item <url> -o item.md`,
	Args: cobra.ExactArgs(1),
	RunE: runItem,
}

func init() {
	rootCmd.AddCommand(itemCmd)

	itemCmd.Flags().StringVar(&itemSite, "site", "tesco", "Site whose extraction rules to apply")
	itemCmd.Flags().StringVarP(&itemOutput, "output", "o", "", "Output file (.json or .md); stdout JSON when empty")
}

func runItem(cmd *cobra.Command, args []string) error {
	url := args[0]
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("invalid URL: must start with http:// or https://")
	}

	site, err := siteFor(itemSite)
	if err != nil {
		return err
	}

	fetcher, cleanup := newFetcher()
	defer cleanup()

	detail, err := scrape.ScrapeItem(cmd.Context(), fetcher, site, url, url)
	if err != nil {
		return fmt.Errorf("scrape item: %w", err)
	}

	switch {
	case itemOutput == "":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(detail)
	case strings.HasSuffix(itemOutput, ".md"):
		if err := output.SaveItemMarkdown(detail, itemOutput); err != nil {
			return err
		}
	default:
		if err := output.SaveJSON(detail, itemOutput); err != nil {
			return err
		}
	}
	log.Info().Str("path", itemOutput).Msg("item written")
	return nil
}
