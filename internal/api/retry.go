package api

import (
	"context"
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"time"
)

// RetryConfig configures retry behavior for failed HTTP requests.
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts.
	MaxRetries int
	// BaseDelay is the initial delay between retry attempts.
	BaseDelay time.Duration
	// MaxDelay caps every delay, including server-provided Retry-After
	// hints.
	MaxDelay time.Duration
	// Multiplier is the factor by which the delay increases after each attempt.
	Multiplier float64
	// Jitter is the randomization factor (0.0 to 1.0) added to delays
	// to prevent thundering herd.
	Jitter float64
	// RetryableOn determines if a status code should trigger a retry.
	RetryableOn func(statusCode int) bool
}

// DefaultRetryConfig returns the default retry configuration.
//
// Key distribution calls are stateless per call and safe to re-invoke, so
// transient server failures are retried; 4xx responses other than 408/429
// are not (retrying a conflict or a wrong passphrase cannot succeed).
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries: 3,
		BaseDelay:  time.Second,
		MaxDelay:   30 * time.Second,
		Multiplier: 2.0,
		Jitter:     0.2,
		RetryableOn: func(statusCode int) bool {
			switch statusCode {
			case 408, 429, 500, 502, 503, 504:
				return true
			default:
				return false
			}
		},
	}
}

// ShouldRetry determines if a request should be retried.
func (r *RetryConfig) ShouldRetry(attempt int, statusCode int) bool {
	if attempt >= r.MaxRetries {
		return false
	}
	return r.RetryableOn(statusCode)
}

// Delay returns the backoff before the next attempt, with jitter.
func (r *RetryConfig) Delay(attempt int) time.Duration {
	backoff := time.Duration(float64(r.BaseDelay) * math.Pow(r.Multiplier, float64(attempt)))
	if backoff > r.MaxDelay {
		backoff = r.MaxDelay
	}

	if r.Jitter > 0 {
		spread := float64(backoff) * r.Jitter
		backoff += time.Duration(rand.Float64()*2*spread - spread)
	}
	return backoff
}

// DelayAfter is Delay with the server's Retry-After hint taken into
// account: a rate-limiting server knows better than our backoff curve
// when it will accept traffic again. The hint is capped at MaxDelay;
// absent or unparseable hints fall back to Delay.
func (r *RetryConfig) DelayAfter(attempt int, retryAfter string) time.Duration {
	if d, ok := parseRetryAfter(retryAfter); ok {
		if d > r.MaxDelay {
			d = r.MaxDelay
		}
		return d
	}
	return r.Delay(attempt)
}

// parseRetryAfter handles both Retry-After forms: delay-seconds and
// HTTP-date.
func parseRetryAfter(value string) (time.Duration, bool) {
	if value == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(value); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second, true
	}
	if at, err := http.ParseTime(value); err == nil {
		if d := time.Until(at); d > 0 {
			return d, true
		}
		return 0, true
	}
	return 0, false
}

// Wait blocks until the next attempt is due or the context is done.
// retryAfter is the Retry-After header of the failed response, empty
// when the failure produced no response.
func (r *RetryConfig) Wait(ctx context.Context, attempt int, retryAfter string) error {
	timer := time.NewTimer(r.DelayAfter(attempt, retryAfter))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
