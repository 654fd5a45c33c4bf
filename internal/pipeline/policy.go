package pipeline

import (
	"errors"

	"github.com/spigell/resume-evaluator/internal/llm"
	"github.com/spigell/resume-evaluator/internal/retry"
)

// classify implements the fixed retryable-vs-fatal table. Rate limiting and
// server-side provider errors may clear on their own; any other provider
// verdict (auth failures, malformed requests) is final. Everything else,
// transport failures and malformed or invalid model output included, is worth
// another attempt since model output is non-deterministic.
func classify(err error) retry.Class {
	var provider *llm.ProviderError
	if errors.As(err, &provider) {
		if provider.Temporary() {
			return retry.Retryable
		}
		return retry.Fatal
	}

	return retry.Retryable
}
