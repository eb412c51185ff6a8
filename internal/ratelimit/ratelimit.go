// Package ratelimit throttles outbound calls to collaborator adapters
// (primarily internal/llm/*) using a token-bucket limiter, the same
// primitive the teacher used for its LLM clients.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter wraps golang.org/x/time/rate for per-adapter call throttling.
type Limiter struct {
	rl *rate.Limiter
}

// New returns a Limiter allowing ratePerSecond calls per second, with a
// burst of burst calls.
func New(ratePerSecond float64, burst int) *Limiter {
	return &Limiter{rl: rate.NewLimiter(rate.Limit(ratePerSecond), burst)}
}

// Wait blocks until a call is permitted or ctx is cancelled.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.rl.Wait(ctx)
}

// Allow reports whether a call may proceed immediately, without blocking.
func (l *Limiter) Allow() bool {
	return l.rl.Allow()
}
