package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiterExhaustsAndRefills(t *testing.T) {
	now := time.Now()
	m := NewMemoryLimiter(3, time.Minute)
	m.now = func() time.Time { return now }

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		ok, err := m.Allow(ctx, "nadia@example.com")
		require.NoError(t, err)
		assert.True(t, ok, "attempt %d within capacity", i+1)
	}

	ok, err := m.Allow(ctx, "nadia@example.com")
	require.NoError(t, err)
	assert.False(t, ok, "bucket must be empty")

	// 20s at 3/min refills one token
	now = now.Add(20 * time.Second)
	ok, err = m.Allow(ctx, "nadia@example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.Allow(ctx, "nadia@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryLimiterKeysAreIndependent(t *testing.T) {
	m := NewMemoryLimiter(1, time.Minute)
	ctx := context.Background()

	ok, _ := m.Allow(ctx, "a@example.com")
	assert.True(t, ok)
	ok, _ = m.Allow(ctx, "a@example.com")
	assert.False(t, ok)

	ok, _ = m.Allow(ctx, "b@example.com")
	assert.True(t, ok, "a's exhausted bucket must not affect b")
}

func TestNoopAlwaysAllows(t *testing.T) {
	var n Noop
	for i := 0; i < 100; i++ {
		ok, err := n.Allow(context.Background(), "anyone")
		require.NoError(t, err)
		assert.True(t, ok)
	}
}
