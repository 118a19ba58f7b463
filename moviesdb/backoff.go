package moviesdb

import "time"

// Default backoff schedule.
const (
	DefaultBackoffBase = 1 * time.Second
	DefaultMaxRetries  = 3
	DefaultMaxDelay    = 30 * time.Second
)

// BackoffPolicy computes the wait before a retry. It is a pure value: the
// same (attempt, status) pair always yields the same answer, which keeps
// retry behavior deterministic under test.
type BackoffPolicy struct {
	// Base is the delay before the first retry; each further retry doubles
	// it.
	Base time.Duration
	// MaxRetries caps how many retries follow the initial attempt.
	MaxRetries int
	// MaxDelay is the ceiling a doubled delay is clamped to.
	MaxDelay time.Duration
}

// DefaultBackoff returns the documented default schedule: 1s base, doubled
// per attempt, at most 3 retries, capped at 30s.
func DefaultBackoff() BackoffPolicy {
	return BackoffPolicy{
		Base:       DefaultBackoffBase,
		MaxRetries: DefaultMaxRetries,
		MaxDelay:   DefaultMaxDelay,
	}
}

// retryable reports whether a failed attempt with this status may be
// retried. Only 429 and 5xx qualify; status 0 marks a timed-out attempt
// with no response. Other 4xx are never retried.
func retryable(status int) bool {
	return status == 0 || status == 429 || status >= 500
}

// NextDelay returns the wait before retrying after the given zero-based
// failed attempt, or ok=false when the client must stop: either the status
// is not retryable or the retry budget is spent. Delays are monotonically
// non-decreasing in attempt and never exceed MaxDelay.
func (p BackoffPolicy) NextDelay(attempt, status int) (delay time.Duration, ok bool) {
	if !retryable(status) {
		return 0, false
	}
	if attempt >= p.MaxRetries {
		return 0, false
	}

	delay = p.Base << attempt
	// Guard the shift against overflow for absurd attempt counts.
	if delay <= 0 || delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	return delay, true
}
