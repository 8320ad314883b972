package transcript

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrMaxRetries is returned once a retryable call has exhausted its attempts.
var ErrMaxRetries = errors.New("max retries exceeded")

// errRetryable marks an attempt error as eligible for another attempt.
type errRetryable struct {
	err error
}

func (e *errRetryable) Error() string { return e.err.Error() }
func (e *errRetryable) Unwrap() error { return e.err }

// Retryable wraps err so retry will attempt the call again.
func Retryable(err error) error {
	return &errRetryable{err: err}
}

// BackoffPolicy maps a zero-based attempt number to the delay to wait
// before the next attempt.
type BackoffPolicy func(attempt int) time.Duration

// ExponentialBackoff returns a policy that waits base * 2^attempt.
func ExponentialBackoff(base time.Duration) BackoffPolicy {
	return func(attempt int) time.Duration {
		return base << uint(attempt)
	}
}

// retry runs fn up to maxAttempts times, sleeping according to policy
// between attempts. Only errors wrapped with Retryable trigger another
// attempt; any other error is returned as-is. Sleeps are interruptible
// via ctx.
func retry(ctx context.Context, policy BackoffPolicy, maxAttempts int, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		var re *errRetryable
		if !errors.As(err, &re) {
			return err
		}
		lastErr = re.err

		if attempt == maxAttempts-1 {
			break
		}
		if err := sleep(ctx, policy(attempt)); err != nil {
			return err
		}
	}

	return fmt.Errorf("%w after %d attempts: %v", ErrMaxRetries, maxAttempts, lastErr)
}

// sleep waits for d or until ctx is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
