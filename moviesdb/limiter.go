package moviesdb

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter is the optional shared request-budget collaborator. The
// upstream quota is global across every consumer of one API key, so
// independent Client instances can share a single RateLimiter to stay under
// it. Reserve blocks until the budget grants cost units or ctx is done.
type RateLimiter interface {
	Reserve(ctx context.Context, cost int) error
}

type tokenBucket struct {
	limiter *rate.Limiter
}

// NewTokenBucket returns a token-bucket RateLimiter allowing perSecond
// sustained requests with the given burst.
func NewTokenBucket(perSecond float64, burst int) RateLimiter {
	return &tokenBucket{limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

func (t *tokenBucket) Reserve(ctx context.Context, cost int) error {
	return t.limiter.WaitN(ctx, cost)
}
