// Package httpx holds the shared HTTP plumbing for outbound API calls.
//
// Third-party failures surface directly to the user action that triggered
// them; nothing here retries automatically. The Doer interface exists so
// tests can swap the transport without a live endpoint.
package httpx

import (
	"net/http"
	"time"
)

// Doer is the interface for executing HTTP requests.
// *http.Client satisfies it, as does any test double.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DefaultTimeout bounds every outbound call so a hung vendor endpoint cannot
// stall a user action forever.
const DefaultTimeout = 60 * time.Second

// NewClient returns an http.Client with the given timeout, falling back to
// DefaultTimeout when zero.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
