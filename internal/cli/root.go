// Package cli wires the cobra commands: scrape, item, discover, and
// sites.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/promo-watch/promoscrape/internal/config"
	"github.com/promo-watch/promoscrape/internal/engine"
	"github.com/promo-watch/promoscrape/internal/ratelimit"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:     "promoscrape",
	Short:   "Scrape grocery promotions into a tabular dataset",
	Long:    `Promoscrape renders retail listing and detail pages, extracts promotion records with fault-tolerant field rules, and exports them as CSV, JSON, or SQLite rows.`,
	Version: "0.1.0",
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	config.RegisterFlags(rootCmd)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cmd)
		if err != nil {
			return err
		}
		cfg = loaded

		level := zerolog.InfoLevel
		if cfg.LogLevel == "debug" {
			level = zerolog.DebugLevel
		}
		zerolog.SetGlobalLevel(level)
		if cfg.JSONLog {
			log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		} else {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		}

		log.Debug().Str("user_agent", cfg.UserAgent).Msg("configuration loaded")
		return nil
	}
}

// newFetcher builds the configured page fetcher and its cleanup
// function.
func newFetcher() (engine.Fetcher, func()) {
	limiter := ratelimit.NewDomainLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	if cfg.Static {
		return engine.NewStaticFetcher(nil, cfg.HTTPTimeout, cfg.UserAgent, limiter), func() {}
	}

	renderer := engine.NewRenderer(engine.RendererOptions{
		Headless:    cfg.Headless,
		UserAgent:   cfg.UserAgent,
		ChromePath:  cfg.ChromePath,
		Proxy:       cfg.Proxy,
		Wait:        cfg.RenderWait,
		Timeout:     cfg.HTTPTimeout,
		KeepSession: true,
		Limiter:     limiter,
	})
	return renderer, renderer.Close
}
