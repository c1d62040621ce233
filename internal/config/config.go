// Package config holds application settings and the site profile
// registry. Settings combine defaults, environment variables, and CLI
// flags; profiles come from a JSON document mapping site name to
// profile.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// Config holds application configuration values.
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// Fetching
	HTTPTimeout time.Duration
	UserAgent   string
	Proxy       string
	RenderWait  time.Duration
	Headless    bool
	ChromePath  string
	// Static switches the pipeline to the plain HTTP fetcher.
	Static bool

	// Rate limiting
	RateLimitRPS   float64
	RateLimitBurst int

	// Retry
	MaxAttempts int
	RetryDelay  time.Duration

	// Run shape
	MaxPages       int
	Concurrency    int
	TotalPageLimit int

	// Site profiles
	SitesFile string
}

// Load builds a Config from defaults, environment variables, and the
// command's flags, in that precedence order.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := &Config{
		LogLevel:       DefaultLogLevel,
		JSONLog:        DefaultJSONLog,
		HTTPTimeout:    DefaultHTTPTimeout,
		UserAgent:      DefaultUserAgent,
		RenderWait:     DefaultRenderWait,
		Headless:       DefaultHeadless,
		RateLimitRPS:   DefaultRateLimitRPS,
		RateLimitBurst: DefaultRateLimitBurst,
		MaxAttempts:    DefaultMaxAttempts,
		RetryDelay:     DefaultRetryDelay,
		MaxPages:       DefaultMaxPages,
		Concurrency:    DefaultConcurrency,
		SitesFile:      DefaultSitesFile,
	}

	if v := os.Getenv("PROMOSCRAPE_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("PROMOSCRAPE_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("PROMOSCRAPE_CHROME_PATH"); v != "" {
		cfg.ChromePath = v
	}
	if v := os.Getenv("PROMOSCRAPE_SITES"); v != "" {
		cfg.SitesFile = v
	}

	if cmd != nil {
		applyFlags(cfg, cmd)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyFlags(cfg *Config, cmd *cobra.Command) {
	flags := cmd.Flags()
	if f := flags.Lookup("user-agent"); f != nil && f.Changed {
		cfg.UserAgent = f.Value.String()
	}
	if f := flags.Lookup("proxy"); f != nil && f.Changed {
		cfg.Proxy = f.Value.String()
	}
	if f := flags.Lookup("timeout"); f != nil && f.Changed {
		if d, err := time.ParseDuration(f.Value.String()); err == nil {
			cfg.HTTPTimeout = d
		}
	}
	if f := flags.Lookup("wait"); f != nil && f.Changed {
		if d, err := time.ParseDuration(f.Value.String()); err == nil {
			cfg.RenderWait = d
		}
	}
	if f := flags.Lookup("retry-delay"); f != nil && f.Changed {
		if d, err := time.ParseDuration(f.Value.String()); err == nil {
			cfg.RetryDelay = d
		}
	}
	if f := flags.Lookup("retries"); f != nil && f.Changed {
		if n, err := strconv.Atoi(f.Value.String()); err == nil {
			cfg.MaxAttempts = n
		}
	}
	if f := flags.Lookup("pages"); f != nil && f.Changed {
		if n, err := strconv.Atoi(f.Value.String()); err == nil {
			cfg.MaxPages = n
		}
	}
	if f := flags.Lookup("page-budget"); f != nil && f.Changed {
		if n, err := strconv.Atoi(f.Value.String()); err == nil {
			cfg.TotalPageLimit = n
		}
	}
	if f := flags.Lookup("concurrency"); f != nil && f.Changed {
		if n, err := strconv.Atoi(f.Value.String()); err == nil {
			cfg.Concurrency = n
		}
	}
	if f := flags.Lookup("sites"); f != nil && f.Changed {
		cfg.SitesFile = f.Value.String()
	}
	if f := flags.Lookup("static"); f != nil && f.Value.String() == "true" {
		cfg.Static = true
	}
	if f := flags.Lookup("headful"); f != nil && f.Value.String() == "true" {
		cfg.Headless = false
	}
	if f := flags.Lookup("json"); f != nil && f.Value.String() == "true" {
		cfg.JSONLog = true
	}
	if f := flags.Lookup("verbose"); f != nil && f.Value.String() == "true" {
		cfg.LogLevel = "debug"
	}
}
