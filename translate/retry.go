package translate

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// ---------------------------------------------------------------------------
// Rate limit state (global pause for parallel workers)
// ---------------------------------------------------------------------------

// rateLimitState pauses all workers sharing a backend when any one of
// them receives a 429, so parallel workers do not pile onto a
// throttled provider.
type rateLimitState struct {
	mu       sync.Mutex
	paused   int32 // atomic: 1 = paused
	pauseEnd time.Time
}

func (r *rateLimitState) isPaused() bool {
	return atomic.LoadInt32(&r.paused) == 1
}

func (r *rateLimitState) pause(duration time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pauseEnd = time.Now().Add(duration)
	atomic.StoreInt32(&r.paused, 1)
}

func (r *rateLimitState) unpause() {
	atomic.StoreInt32(&r.paused, 0)
}

// waitIfPaused blocks until the rate limit pause is over.
func (r *rateLimitState) waitIfPaused(ctx context.Context) error {
	for r.isPaused() {
		r.mu.Lock()
		remaining := time.Until(r.pauseEnd)
		r.mu.Unlock()
		if remaining <= 0 {
			r.unpause()
			return nil
		}
		if remaining > 100*time.Millisecond {
			remaining = 100 * time.Millisecond
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(remaining):
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Bounded retry with backoff
// ---------------------------------------------------------------------------

// transientError marks a failure worth retrying with exponential
// backoff: network errors and 5xx responses.
type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// retryWithBackoff runs fn up to maxRetries+1 times. RateLimitedError
// pauses all workers for the server-indicated delay; transient errors
// back off exponentially (2^attempt seconds). Once the cap is
// exhausted a rate limit degrades to BackendUnavailableError. Any
// other error returns immediately.
func retryWithBackoff(ctx context.Context, rl *rateLimitState, provider string, maxRetries int, fn func(context.Context) (string, error)) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if rl != nil {
			if err := rl.waitIfPaused(ctx); err != nil {
				return "", err
			}
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		out, err := fn(ctx)
		if err == nil {
			return out, nil
		}
		lastErr = err

		var rle *RateLimitedError
		var te *transientError
		switch {
		case errors.As(err, &rle):
			if attempt == maxRetries {
				break
			}
			if rl != nil {
				rl.pause(rle.RetryAfter)
			}
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(rle.RetryAfter):
			}
			if rl != nil {
				rl.unpause()
			}
			continue

		case errors.As(err, &te):
			if attempt == maxRetries {
				break
			}
			wait := time.Duration(math.Pow(2, float64(attempt))) * time.Second
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(wait):
			}
			continue

		default:
			return "", err
		}
		break
	}

	var rle *RateLimitedError
	if errors.As(lastErr, &rle) {
		return "", &BackendUnavailableError{
			Provider: provider,
			Err:      fmt.Errorf("rate limited after %d retries", maxRetries),
		}
	}
	return "", &BackendUnavailableError{
		Provider: provider,
		Err:      fmt.Errorf("exhausted %d retries: %w", maxRetries, lastErr),
	}
}
