package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel       = "info"
	DefaultJSONLog        = false
	DefaultUserAgent      = "promoscrape/0.1 (https://github.com/promo-watch/promoscrape)"
	DefaultHTTPTimeout    = 30 * time.Second
	DefaultRenderWait     = 2 * time.Second
	DefaultRateLimitRPS   = 2.0
	DefaultRateLimitBurst = 4
	DefaultMaxAttempts    = 3
	DefaultRetryDelay     = 2 * time.Second
	DefaultMaxPages       = 0 // paginate until the first empty page
	DefaultConcurrency    = 2
	DefaultHeadless       = true
	DefaultSitesFile      = "config/sites.json"
)
