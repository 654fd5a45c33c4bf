// Package retry provides a bounded retry-with-backoff wrapper around a single
// fallible call. Classification of failures is supplied by the caller, so the
// policy stays centrally testable and tunable.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spigell/resume-evaluator/internal/utils"
)

// wait is swapped out in tests to record backoff delays without sleeping.
var wait = utils.WaitFor

// Class tells Invoke whether a failed attempt is worth repeating.
type Class int

const (
	// Retryable failures may succeed on a subsequent attempt.
	Retryable Class = iota
	// Fatal failures are returned immediately without further attempts.
	Fatal
)

// Policy controls how Invoke schedules attempts. The wait before attempt n+1
// is BaseBackoff doubled n-1 times. A nil Classify treats every failure as
// retryable.
type Policy struct {
	MaxAttempts int
	BaseBackoff time.Duration
	Classify    func(error) Class
}

// ExhaustedError reports that every allowed attempt failed with a retryable
// error. It wraps the last failure.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("retries exhausted after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error { return e.Err }

// Invoke runs fn until it succeeds, fails fatally, the context is cancelled,
// or MaxAttempts attempts have been made. It reports the number of attempts
// performed alongside the result. Cancellation is observed both between
// attempts and during backoff waits.
func Invoke[T any](ctx context.Context, policy Policy, fn func(context.Context) (T, error)) (T, int, error) {
	var zero T

	maxAttempts := policy.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if err := wait(ctx, policy.backoff(attempt-1)); err != nil {
				return zero, attempt - 1, err
			}
		}

		result, err := fn(ctx)
		if err == nil {
			return result, attempt, nil
		}

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return zero, attempt, err
		}

		if policy.Classify != nil && policy.Classify(err) == Fatal {
			return zero, attempt, err
		}

		lastErr = err
	}

	return zero, maxAttempts, &ExhaustedError{Attempts: maxAttempts, Err: lastErr}
}

// backoff returns the wait before the given retry, starting at BaseBackoff
// and doubling each time.
func (p Policy) backoff(retry int) time.Duration {
	d := p.BaseBackoff
	if d <= 0 {
		return 0
	}
	for i := 1; i < retry; i++ {
		d *= 2
	}
	return d
}
