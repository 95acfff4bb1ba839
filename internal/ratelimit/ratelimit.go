// Package ratelimit guards the credential endpoints against brute-force
// attempts. Buckets are keyed by caller identity (email or client address)
// and refill continuously.
package ratelimit

import "context"

// Limiter reports whether one more attempt is allowed for the key.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Noop allows everything. Used when no limiter backend is configured.
type Noop struct{}

func (Noop) Allow(ctx context.Context, key string) (bool, error) { return true, nil }
