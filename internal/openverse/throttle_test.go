package openverse

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGate_LeadingCallFiresImmediately(t *testing.T) {
	g := newGate(300*time.Millisecond, time.Now)

	start := time.Now()
	err := g.Wait(context.Background())
	assert.NoError(t, err)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestGate_TrailingLatestWins(t *testing.T) {
	g := newGate(300*time.Millisecond, time.Now)
	ctx := context.Background()

	// Leading call consumes the window.
	assert.NoError(t, g.Wait(ctx))

	first := make(chan error, 1)
	go func() { first <- g.Wait(ctx) }()
	time.Sleep(50 * time.Millisecond) // let the first waiter register

	second := make(chan error, 1)
	start := time.Now()
	go func() { second <- g.Wait(ctx) }()

	// The older pending call is displaced by the newer one.
	select {
	case err := <-first:
		assert.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(time.Second):
		t.Fatal("displaced waiter did not return")
	}

	// The newest pending call fires at the window boundary.
	select {
	case err := <-second:
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
	case <-time.After(time.Second):
		t.Fatal("surviving waiter did not fire")
	}
}

func TestGate_WindowReopens(t *testing.T) {
	g := newGate(100*time.Millisecond, time.Now)
	ctx := context.Background()

	assert.NoError(t, g.Wait(ctx))
	time.Sleep(150 * time.Millisecond)

	start := time.Now()
	assert.NoError(t, g.Wait(ctx))
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestGate_ContextCancel(t *testing.T) {
	g := newGate(time.Minute, time.Now)

	assert.NoError(t, g.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	res := make(chan error, 1)
	go func() { res <- g.Wait(ctx) }()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-res:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled waiter did not return")
	}
}
