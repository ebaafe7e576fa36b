package transport

import (
	"context"

	"golang.org/x/time/rate"
)

// tokenBucketLimiter wraps rate.Limiter to implement RateLimiter.
type tokenBucketLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter returns a limiter allowing requestsPerSecond requests with a
// burst of one second's worth. It returns nil when requestsPerSecond <= 0,
// which transports treat as "no limit".
func NewRateLimiter(requestsPerSecond float64) RateLimiter {
	if requestsPerSecond <= 0 {
		return nil
	}
	burst := int(requestsPerSecond)
	if burst < 1 {
		burst = 1
	}
	return &tokenBucketLimiter{limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst)}
}

// Wait blocks until a request is allowed under the rate limit.
func (r *tokenBucketLimiter) Wait(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}
