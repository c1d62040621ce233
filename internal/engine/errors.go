package engine

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrorCode identifies the failure class of a fetch.
type ErrorCode string

const (
	ErrCodeTimeout   ErrorCode = "TIMEOUT"
	ErrCodeNetwork   ErrorCode = "NETWORK_ERROR"
	ErrCodeBrowser   ErrorCode = "BROWSER_ERROR"
	ErrCodeBadStatus ErrorCode = "BAD_STATUS"
	ErrCodeParse     ErrorCode = "PARSE_ERROR"
)

// FetchError wraps a failed page fetch with its classification. The
// Retry flag is the single source of truth for the retry controller:
// transient network conditions are retryable, terminal responses are
// not.
type FetchError struct {
	Code       ErrorCode
	URL        string
	StatusCode int
	Underlying error
	Retry      bool
}

func (e *FetchError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: fetch %s: %v", e.Code, e.URL, e.Underlying)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: fetch %s: status %d", e.Code, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s: fetch %s", e.Code, e.URL)
}

func (e *FetchError) Unwrap() error {
	return e.Underlying
}

// IsRetryable reports whether err represents a transient fetch failure
// worth another attempt. Unclassified errors default to retryable,
// matching the "recoverable network blip" assumption.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Retry
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return true
}

// classifyStatus builds a FetchError for a non-success HTTP status.
// Rate limiting and server-side failures are transient; client errors
// are terminal.
func classifyStatus(url string, status int) *FetchError {
	retry := status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
	return &FetchError{
		Code:       ErrCodeBadStatus,
		URL:        url,
		StatusCode: status,
		Retry:      retry,
	}
}

// classifyFetch wraps a transport-level error from a fetch attempt.
func classifyFetch(url string, err error) *FetchError {
	code := ErrCodeNetwork
	if errors.Is(err, context.DeadlineExceeded) {
		code = ErrCodeTimeout
	}
	return &FetchError{
		Code:       code,
		URL:        url,
		Underlying: err,
		Retry:      true,
	}
}
