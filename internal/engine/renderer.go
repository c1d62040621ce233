package engine

import (
	"context"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"github.com/promo-watch/promoscrape/internal/ratelimit"
)

// RendererOptions configures the headless Chrome renderer.
type RendererOptions struct {
	Headless   bool
	UserAgent  string
	ChromePath string
	Proxy      string
	// Wait is how long to let client-side scripts settle after
	// navigation before the DOM snapshot is taken.
	Wait    time.Duration
	Timeout time.Duration
	// KeepSession retains the Chrome process between fetches. The
	// per-fetch browser context is still released after every call;
	// Close tears the process down.
	KeepSession bool
	Limiter     ratelimit.Limiter
}

// Renderer fetches pages through headless Chrome so that dynamically
// produced listing markup is present in the returned HTML. Every Fetch
// acquires its own browser context and releases it before returning,
// on success and on failure alike.
type Renderer struct {
	opts RendererOptions

	mu          sync.Mutex
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewRenderer builds a Renderer from opts.
func NewRenderer(opts RendererOptions) *Renderer {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Renderer{opts: opts}
}

// Name identifies the renderer in logs and outcomes.
func (r *Renderer) Name() string {
	return "renderer"
}

// Fetch navigates to url, waits for dynamic content, and returns the
// rendered document HTML.
func (r *Renderer) Fetch(ctx context.Context, url string) (string, error) {
	start := time.Now()

	if r.opts.Limiter != nil {
		if err := r.opts.Limiter.Wait(ctx, url); err != nil {
			return "", err
		}
	}

	allocCtx, release := r.acquireAllocator(ctx)
	defer release()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	// The timeout applies below the browser context so a kept Chrome
	// process survives a slow page.
	runCtx, cancel := context.WithTimeout(browserCtx, r.opts.Timeout)
	defer cancel()

	var statusCode int64
	chromedp.ListenTarget(runCtx, func(ev interface{}) {
		if resp, ok := ev.(*network.EventResponseReceived); ok {
			if resp.Response.URL == url {
				statusCode = resp.Response.Status
			}
		}
	})

	var html string
	tasks := []chromedp.Action{
		network.Enable(),
		chromedp.Navigate(url),
	}
	if r.opts.Wait > 0 {
		tasks = append(tasks, chromedp.Sleep(r.opts.Wait))
	}
	tasks = append(tasks, chromedp.OuterHTML("html", &html, chromedp.ByQuery))

	if err := chromedp.Run(runCtx, tasks...); err != nil {
		log.Debug().Str("url", url).Err(err).Msg("render failed")
		return "", classifyFetch(url, err)
	}

	if statusCode >= 400 {
		return "", classifyStatus(url, int(statusCode))
	}

	log.Debug().
		Str("url", url).
		Int64("status", statusCode).
		Dur("elapsed", time.Since(start)).
		Msg("page rendered")

	return html, nil
}

// acquireAllocator returns the exec allocator for one fetch and the
// function releasing it. Without KeepSession the Chrome process is
// scoped to the fetch; with it, the process lives until Close.
func (r *Renderer) acquireAllocator(ctx context.Context) (context.Context, func()) {
	if !r.opts.KeepSession {
		allocCtx, cancel := chromedp.NewExecAllocator(ctx, r.allocOpts()...)
		return allocCtx, cancel
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.allocCtx == nil {
		r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), r.allocOpts()...)
	}
	return r.allocCtx, func() {}
}

// Close releases a kept Chrome process, if any.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.allocCancel != nil {
		r.allocCancel()
		r.allocCtx = nil
		r.allocCancel = nil
	}
}

func (r *Renderer) allocOpts() []chromedp.ExecAllocatorOption {
	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-breakpad", true),
		chromedp.Flag("disable-hang-monitor", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("ignore-certificate-errors", true),
	}
	if r.opts.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(r.opts.UserAgent))
	}
	if r.opts.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.opts.ChromePath))
	}
	if r.opts.Proxy != "" {
		opts = append(opts, chromedp.ProxyServer(r.opts.Proxy))
	}
	if r.opts.Headless {
		opts = append(opts, chromedp.Flag("headless", "new"))
	} else {
		opts = append(opts, chromedp.Flag("headless", false))
	}
	return opts
}
