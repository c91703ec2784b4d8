package runtime

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Gate is the pause signal of a run. Pause and Resume may be called from any
// goroutine; Wait is called by the run goroutine between steps.
type Gate struct {
	paused atomic.Bool
	poll   time.Duration

	mu     sync.Mutex
	resume chan struct{} // closed by Resume
}

// NewGate returns an open gate. poll bounds each sleep inside Wait.
func NewGate(poll time.Duration) *Gate {
	if poll <= 0 {
		poll = 50 * time.Millisecond
	}
	return &Gate{poll: poll}
}

// Pause closes the gate. It reports false if the gate was already closed.
func (g *Gate) Pause() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.paused.Load() {
		return false
	}
	g.resume = make(chan struct{})
	g.paused.Store(true)
	return true
}

// Resume opens the gate. It reports false if the gate was not closed.
func (g *Gate) Resume() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.paused.Load() {
		return false
	}
	g.paused.Store(false)
	close(g.resume)
	return true
}

// Paused reports whether the gate is closed.
func (g *Gate) Paused() bool { return g.paused.Load() }

// Wait blocks while the gate is closed. It wakes on Resume, on ctx
// cancellation, or after each poll interval to re-check both.
func (g *Gate) Wait(ctx context.Context) error {
	for g.paused.Load() {
		g.mu.Lock()
		resume := g.resume
		g.mu.Unlock()

		timer := time.NewTimer(g.poll)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-resume:
		case <-timer.C:
		}
		timer.Stop()
	}
	return ctx.Err()
}
