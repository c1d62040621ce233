package config

import "github.com/spf13/cobra"

// RegisterFlags attaches the shared configuration flags to the root
// command so every subcommand inherits them.
func RegisterFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Enable debug logging")
	pf.Bool("json", false, "Emit logs as JSON")
	pf.String("timeout", DefaultHTTPTimeout.String(), "Per-fetch timeout")
	pf.String("user-agent", "", "Override the User-Agent header")
	pf.String("proxy", "", "Proxy server for page fetches")
	pf.String("wait", DefaultRenderWait.String(), "Settle time for dynamic content after navigation")
	pf.Int("retries", DefaultMaxAttempts, "Fetch attempts per page")
	pf.String("retry-delay", DefaultRetryDelay.String(), "Fixed delay between attempts of the same page")
	pf.String("sites", DefaultSitesFile, "Path to the site profile document")
	pf.Bool("static", false, "Fetch over plain HTTP instead of headless Chrome")
	pf.Bool("headful", false, "Show the browser window")
}
