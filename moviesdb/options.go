package moviesdb

import (
	"net/http"
	"time"
)

// DefaultTimeout is the per-attempt request budget. Every retry gets a
// fresh one.
const DefaultTimeout = 30 * time.Second

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-attempt timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL overrides the request base URL. The authentication headers
// still come from the credentials; this is for proxies and tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithBackoff replaces the default retry schedule.
func WithBackoff(policy BackoffPolicy) Option {
	return func(c *Client) {
		c.backoff = policy
	}
}

// WithRateLimiter attaches a shared request-budget collaborator. Several
// clients may hold the same RateLimiter to share one upstream quota.
func WithRateLimiter(limiter RateLimiter) Option {
	return func(c *Client) {
		c.limiter = limiter
	}
}

// WithClock substitutes the clock used for backoff waits.
func WithClock(clock Clock) Option {
	return func(c *Client) {
		c.clock = clock
	}
}

// WithObserver attaches a per-call outcome sink.
func WithObserver(observer Observer) Option {
	return func(c *Client) {
		c.observer = observer
	}
}
