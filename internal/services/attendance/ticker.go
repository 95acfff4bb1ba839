package attendance

import (
	"context"
	"time"
)

// Ticker produces a lazy, restartable stream of elapsed seconds for a
// running session. It exists purely for presentation: the live duration a
// client renders while clocked in. The authoritative duration is only ever
// the one persisted at clock-out.
type Ticker struct {
	interval time.Duration
	now      func() time.Time
}

func NewTicker() *Ticker {
	return &Ticker{interval: time.Second, now: time.Now}
}

// Elapsed emits the whole seconds elapsed since the given start time, once
// immediately and then every tick, until the context is cancelled. Calling
// it again restarts the sequence.
func (t *Ticker) Elapsed(ctx context.Context, since time.Time) <-chan int64 {
	out := make(chan int64)

	go func() {
		defer close(out)

		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		emit := func() bool {
			elapsed := int64(t.now().Sub(since).Seconds())
			if elapsed < 0 {
				elapsed = 0
			}
			select {
			case out <- elapsed:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !emit() {
			return
		}
		for {
			select {
			case <-ticker.C:
				if !emit() {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
