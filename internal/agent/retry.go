package agent

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// ErrExhausted marks failures where every retry attempt hit a rate limit.
var ErrExhausted = errors.New("retries exhausted")

// IsExhausted reports whether err means the retry budget was spent.
func IsExhausted(err error) bool { return errors.Is(err, ErrExhausted) }

// IsRateLimited classifies an error as a throttling failure worth retrying.
// Provider errors carry the HTTP status and body text, so a substring match
// covers both structured 429 responses and quota messages.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "429") ||
		strings.Contains(s, "rate limit") ||
		strings.Contains(s, "rate_limit") ||
		strings.Contains(s, "quota")
}

// Retrier runs a call with exponential backoff on rate-limit errors.
// All other errors return immediately.
type Retrier struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Jitter      time.Duration
}

// NewRetrier constructs a retrier. Zero values fall back to 3 attempts with
// a 15s base delay and up to 3s of jitter.
func NewRetrier(maxAttempts int, baseDelay, jitter time.Duration) *Retrier {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	if baseDelay <= 0 {
		baseDelay = 15 * time.Second
	}
	if jitter < 0 {
		jitter = 3 * time.Second
	}
	return &Retrier{MaxAttempts: maxAttempts, BaseDelay: baseDelay, Jitter: jitter}
}

// Do invokes fn up to MaxAttempts times. After a rate-limited attempt k it
// waits BaseDelay*2^k plus jitter before the next one. Context cancellation
// aborts the wait.
func (r *Retrier) Do(ctx context.Context, fn func() (string, error)) (string, error) {
	var lastErr error
	for attempt := 0; attempt < r.MaxAttempts; attempt++ {
		out, err := fn()
		if err == nil {
			return out, nil
		}
		if !IsRateLimited(err) {
			return "", err
		}
		lastErr = err
		if attempt == r.MaxAttempts-1 {
			break
		}
		delay := r.BaseDelay * time.Duration(1<<attempt)
		if r.Jitter > 0 {
			delay += time.Duration(rand.Int63n(int64(r.Jitter)))
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "", fmt.Errorf("%w after %d attempts: %v", ErrExhausted, r.MaxAttempts, lastErr)
}
