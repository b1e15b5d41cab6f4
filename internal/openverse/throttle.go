package openverse

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSuperseded is returned to a throttled caller whose slot was taken
// by a newer call before the rate window reopened.
var ErrSuperseded = errors.New("request superseded by a newer call")

// gate enforces at most one upstream call per interval, leading and
// trailing. The first call in a burst fires immediately. While the
// window is closed, the newest waiting call displaces any previously
// waiting one, which fails with ErrSuperseded; the surviving call fires
// at the window boundary.
type gate struct {
	interval time.Duration
	now      func() time.Time

	mu      sync.Mutex
	last    time.Time  // when a call last fired; zero means never
	waiter  chan error // pending trailing call, nil if none
	timerOn bool
}

func newGate(interval time.Duration, now func() time.Time) *gate {
	return &gate{interval: interval, now: now}
}

// Wait blocks until the caller may fire, or returns ErrSuperseded if a
// newer call took its slot, or ctx.Err() on cancellation.
func (g *gate) Wait(ctx context.Context) error {
	g.mu.Lock()
	now := g.now()
	if g.waiter == nil && !g.timerOn && (g.last.IsZero() || now.Sub(g.last) >= g.interval) {
		g.last = now
		g.mu.Unlock()
		return nil
	}

	if g.waiter != nil {
		g.waiter <- ErrSuperseded
	}
	ch := make(chan error, 1)
	g.waiter = ch

	if !g.timerOn {
		g.timerOn = true
		delay := g.interval - now.Sub(g.last)
		if delay < 0 {
			delay = 0
		}
		time.AfterFunc(delay, g.release)
	}
	g.mu.Unlock()

	select {
	case err := <-ch:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// release fires the surviving trailing call, if any, and reopens the
// window.
func (g *gate) release() {
	g.mu.Lock()
	g.timerOn = false
	w := g.waiter
	g.waiter = nil
	if w != nil {
		g.last = g.now()
	}
	g.mu.Unlock()

	if w != nil {
		w <- nil
	}
}
