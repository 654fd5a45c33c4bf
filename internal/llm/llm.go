// Package llm defines the single-shot completion contract implemented by the
// provider clients. Clients never retry; retry policy belongs to the caller.
package llm

import "context"

// Request is a single structured-completion request. System carries the
// instructions and the JSON response contract, User carries the source
// material (raw text or serialized records).
type Request struct {
	System string
	User   string
}

// Client sends exactly one completion request to an LLM provider, demanding a
// JSON-object-shaped response, and returns the raw response text.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
	Model() string
}
