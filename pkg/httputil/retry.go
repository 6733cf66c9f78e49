package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a transient upstream failure (a dropped connection or
// a 5xx response). [Retry] only repeats operations that fail with one.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err in a [RetryableError]. It returns nil for a nil error.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err carries a [RetryableError].
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// Policy configures [Do].
type Policy struct {
	// Attempts is the total number of tries. Values below 1 mean one try.
	Attempts int
	// Delay is the wait before the second try; it doubles after each failure.
	Delay time.Duration
	// MaxDelay caps the wait between tries. Zero means no cap.
	MaxDelay time.Duration
}

// NoRetry performs a single attempt.
var NoRetry = Policy{Attempts: 1}

// Do runs fn according to p. Errors not wrapped with [RetryableError] are
// returned immediately. The last error is returned when every attempt fails,
// or ctx.Err() if the context ends while waiting.
func Do(ctx context.Context, p Policy, fn func() error) error {
	attempts := max(p.Attempts, 1)
	delay := p.Delay
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
			delay *= 2
			if p.MaxDelay > 0 && delay > p.MaxDelay {
				delay = p.MaxDelay
			}
		}
	}
	return lastErr
}

// Retry executes fn up to attempts times, doubling delay after each failure.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	return Do(ctx, Policy{Attempts: attempts, Delay: delay}, fn)
}
