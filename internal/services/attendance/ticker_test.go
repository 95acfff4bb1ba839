package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickerEmitsElapsedSeconds(t *testing.T) {
	fakeNow := time.Date(2025, 6, 1, 9, 0, 30, 0, time.UTC)
	tick := &Ticker{interval: time.Millisecond, now: func() time.Time { return fakeNow }}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := tick.Elapsed(ctx, fakeNow.Add(-30*time.Second))

	first := <-out
	assert.Equal(t, int64(30), first)

	second, ok := <-out
	require.True(t, ok)
	assert.Equal(t, int64(30), second)
}

func TestTickerNeverNegative(t *testing.T) {
	fakeNow := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	tick := &Ticker{interval: time.Millisecond, now: func() time.Time { return fakeNow }}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start time in the future, e.g. client clock skew
	out := tick.Elapsed(ctx, fakeNow.Add(5*time.Second))
	assert.Equal(t, int64(0), <-out)
}

func TestTickerStopsOnCancel(t *testing.T) {
	tick := &Ticker{interval: time.Millisecond, now: time.Now}

	ctx, cancel := context.WithCancel(context.Background())
	out := tick.Elapsed(ctx, time.Now())

	<-out
	cancel()

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-out:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("ticker channel not closed after cancel")
		}
	}
}

func TestTickerIsRestartable(t *testing.T) {
	tick := &Ticker{interval: time.Millisecond, now: time.Now}

	ctx1, cancel1 := context.WithCancel(context.Background())
	out1 := tick.Elapsed(ctx1, time.Now())
	<-out1
	cancel1()

	ctx2, cancel2 := context.WithCancel(context.Background())
	defer cancel2()
	out2 := tick.Elapsed(ctx2, time.Now())

	select {
	case v := <-out2:
		assert.GreaterOrEqual(t, v, int64(0))
	case <-time.After(time.Second):
		t.Fatal("restarted ticker did not emit")
	}
}
