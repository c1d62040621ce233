// Package engine provides the page retrieval collaborators: a headless
// Chrome renderer for listing pages whose content is produced by
// client-side scripts, and a plain HTTP fetcher for static targets and
// tests. Both return fully rendered raw markup; parsing and extraction
// happen elsewhere.
package engine

import "context"

// Fetcher turns a URL into raw markup. Implementations may fail with a
// transient network error; callers decide whether to retry via
// IsRetryable.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
	Name() string
}
