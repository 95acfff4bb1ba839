package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter is a single-instance token bucket map. It backs deployments
// without Redis and the test suite.
type MemoryLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	capacity float64
	window   time.Duration

	now func() time.Time
}

type bucket struct {
	tokens     float64
	lastRefill time.Time
}

func NewMemoryLimiter(capacity int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		buckets:  make(map[string]*bucket),
		capacity: float64(capacity),
		window:   window,
		now:      time.Now,
	}
}

func (m *MemoryLimiter) Allow(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	b, ok := m.buckets[key]
	if !ok {
		b = &bucket{tokens: m.capacity, lastRefill: now}
		m.buckets[key] = b
	}

	refillRate := m.capacity / m.window.Seconds()
	if elapsed := now.Sub(b.lastRefill).Seconds(); elapsed > 0 {
		b.tokens = min(m.capacity, b.tokens+elapsed*refillRate)
	}
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true, nil
	}
	return false, nil
}
