package util

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter caps how often change batches are dispatched in watch mode. One
// batch costs one token.
type Limiter struct {
	bucket *rate.Limiter
}

// NewLimiter allows perSecond batches on average and up to burst back to back.
// A non-positive perSecond turns limiting off.
func NewLimiter(perSecond float64, burst int) *Limiter {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &Limiter{bucket: rate.NewLimiter(limit, burst)}
}

// Allow takes a token if one is available now.
func (l *Limiter) Allow() bool {
	return l.bucket.Allow()
}

// Delay reports how long until the next token, without taking it.
func (l *Limiter) Delay() time.Duration {
	limit := l.bucket.Limit()
	missing := 1 - l.bucket.Tokens()
	if missing <= 0 || limit == rate.Inf || limit <= 0 {
		return 0
	}
	return time.Duration(missing / float64(limit) * float64(time.Second))
}

// Wait blocks until a token is available or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.bucket.Wait(ctx)
}
