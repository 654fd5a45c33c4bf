package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrEmptyResponse signals that the provider answered without any usable text.
// Model output is non-deterministic, so callers treat this as retryable.
var ErrEmptyResponse = errors.New("provider returned an empty response")

// TransportError is a network-level failure: the request never produced a
// provider verdict. Always worth retrying.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProviderError is a failure reported by the provider itself, carrying the
// HTTP-style status it answered with.
type ProviderError struct {
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("provider returned status %d", e.Status)
	}
	return fmt.Sprintf("provider returned status %d: %s", e.Status, e.Message)
}

// Temporary reports whether the failure may clear on its own: rate limiting
// and server-side errors. Everything else (auth, malformed request) is final.
func (e *ProviderError) Temporary() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= 500
}
