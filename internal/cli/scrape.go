package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/promo-watch/promoscrape/internal/config"
	"github.com/promo-watch/promoscrape/internal/output"
	"github.com/promo-watch/promoscrape/internal/scrape"
	"github.com/promo-watch/promoscrape/internal/sites"
	"github.com/promo-watch/promoscrape/internal/storage"
	"github.com/promo-watch/promoscrape/pkg/models"
)

var (
	scrapeOutput      string
	scrapeFormat      string
	scrapeDB          string
	scrapePages       int
	scrapePageBudget  int
	scrapeConcurrency int
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape <site>",
	Short: "Scrape every category of a configured site",
	Long: `Iterates the site's categories and pages, retrying transient fetch
failures with a fixed delay and stopping each category at the first
page without record containers.`,
	Example: `  # Scrape the default Tesco profile to CSV
  promoscrape scrape tesco -o promotions.csv

  # Cap pages per category and store rows in SQLite as well
  promoscrape scrape tesco --pages 5 --db promotions.db`,
	Args: cobra.ExactArgs(1),
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().StringVarP(&scrapeOutput, "output", "o", "promotions.csv", "Output file path")
	scrapeCmd.Flags().StringVarP(&scrapeFormat, "format", "f", "csv", "Output format: csv or json")
	scrapeCmd.Flags().StringVar(&scrapeDB, "db", "", "SQLite database to also store rows in")
	scrapeCmd.Flags().IntVar(&scrapePages, "pages", config.DefaultMaxPages, "Max pages per category (0 = until empty page)")
	scrapeCmd.Flags().IntVar(&scrapePageBudget, "page-budget", 0, "Max pages across the whole run (0 = unlimited)")
	scrapeCmd.Flags().IntVar(&scrapeConcurrency, "concurrency", config.DefaultConcurrency, "Categories scraped in parallel")
}

func runScrape(cmd *cobra.Command, args []string) error {
	siteName := args[0]

	registry, err := config.LoadSites(cfg.SitesFile)
	if err != nil {
		return err
	}
	profile, err := registry.Get(siteName)
	if err != nil {
		return err
	}
	site, err := siteFor(siteName)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher, cleanup := newFetcher()
	defer cleanup()

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("scraping "+siteName),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionShowCount(),
	)

	orch := scrape.New(profile, site, fetcher, scrape.Options{
		MaxPagesPerCategory: scrapePages,
		MaxAttempts:         cfg.MaxAttempts,
		Delay:               cfg.RetryDelay,
		Concurrency:         scrapeConcurrency,
		TotalPageLimit:      scrapePageBudget,
		OnOutcome: func(o models.Outcome) {
			bar.Add(1)
			log.Debug().
				Str("category", o.Category).
				Int("page", o.Page).
				Int("records", o.RecordsFound).
				Str("status", string(o.Status)).
				Msg("page done")
		},
	})

	records, outcomes, stats := orch.Run(ctx)
	bar.Finish()
	fmt.Fprintln(os.Stderr)

	for _, o := range outcomes {
		if o.Status == models.StatusFailed {
			log.Warn().Str("category", o.Category).Int("page", o.Page).Msg("page gave up after retries")
		}
	}

	if err := writeRecords(records); err != nil {
		return err
	}
	if scrapeDB != "" {
		if err := storeRecords(records, profile.BaseURL); err != nil {
			// Persistence is a downstream convenience, not part of the run.
			log.Warn().Err(err).Msg("failed to store rows")
		}
	}

	fmt.Printf("scraped %d records from %d pages (%d failed, %d retries) in %s\n",
		stats.Records, stats.PagesVisited, stats.PagesFailed, stats.Retries, stats.Duration.Round(1e6))
	return nil
}

func writeRecords(records []models.Record) error {
	switch strings.ToLower(scrapeFormat) {
	case "csv":
		if err := output.SaveCSV(records, scrapeOutput); err != nil {
			return err
		}
	case "json":
		if err := output.SaveJSON(records, scrapeOutput); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (want csv or json)", scrapeFormat)
	}
	log.Info().Str("path", scrapeOutput).Int("records", len(records)).Msg("output written")
	return nil
}

func storeRecords(records []models.Record, source string) error {
	store, err := storage.Open(scrapeDB)
	if err != nil {
		return err
	}
	defer store.Close()

	rows := make([]storage.Row, len(records))
	for i, r := range records {
		rows[i] = storage.Row{
			Name:         r.Name,
			CurrentPrice: r.CurrentPrice,
			RegularPrice: r.RegularPrice,
			Discount:     r.Discount,
			ValidityDate: r.ValidityDate,
			Source:       r.Source,
		}
	}
	if err := store.InsertRows(rows); err != nil {
		return err
	}
	log.Info().Str("db", scrapeDB).Int("rows", len(rows)).Str("source", source).Msg("rows stored")
	return nil
}

// siteFor maps a profile name to its extraction rule tables. Profiles
// control which pages are visited; rule tables control how fields are
// read from them.
func siteFor(name string) (sites.Site, error) {
	switch name {
	case "tesco":
		return sites.Tesco(), nil
	default:
		return sites.Site{}, fmt.Errorf("no extraction rules registered for site %q", name)
	}
}
