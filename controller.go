package sortviz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/khshaikh19/sortviz/internal/algorithms"
	"github.com/khshaikh19/sortviz/internal/logging"
	"github.com/khshaikh19/sortviz/internal/runtime"
	"github.com/khshaikh19/sortviz/pkg/config"
	"github.com/khshaikh19/sortviz/pkg/domain"
	"github.com/khshaikh19/sortviz/pkg/ports"
)

// Controller is the high-level entry point of the engine.
// It owns the execution state machine and at most one live run.
type Controller struct {
	mu      sync.Mutex
	state   domain.ExecutionState
	current *RunHandle
	pending []queuedState

	// deliverMu keeps OnStateChange calls in transition order.
	deliverMu sync.Mutex

	cfg     config.Config
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	locker  ports.RunLocker
	lockKey string
}

// Option defines a functional option for configuring the Controller.
type Option func(*Controller)

// WithLogger sets a custom structured logger for the controller.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// WithConfig replaces the default speed, delay and plumbing settings.
func WithConfig(cfg config.Config) Option {
	return func(c *Controller) {
		c.cfg = cfg
	}
}

// WithLocker guards every run with a lock on key, so controllers sharing
// the locker never run concurrently on the same array.
func WithLocker(locker ports.RunLocker, key string) Option {
	return func(c *Controller) {
		c.locker = locker
		c.lockKey = key
	}
}

// New initializes a Controller in the Idle state.
func New(opts ...Option) *Controller {
	c := &Controller{
		state: domain.StateIdle,
		cfg:   config.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	return c
}

// State returns the current execution state.
func (c *Controller) State() domain.ExecutionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Current returns the most recent run, or nil before the first Start.
func (c *Controller) Current() *RunHandle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Start launches algorithm over a copy of array, paced by speed.
// It fails with ErrAlreadyRunning while a run is Running or Paused. If the
// previous run is still Stopping, Start waits for it to exit first.
// Cancelling ctx stops the run.
func (c *Controller) Start(ctx context.Context, algorithm domain.Algorithm, array []int, speed int) (*RunHandle, error) {
	sort, err := algorithms.Lookup(algorithm)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	for c.state == domain.StateStopping {
		prev := c.current
		c.mu.Unlock()
		select {
		case <-prev.Done():
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		c.mu.Lock()
	}
	if c.state.Active() {
		c.mu.Unlock()
		return nil, domain.ErrAlreadyRunning
	}

	var lease ports.Lease
	if c.locker != nil {
		lease, err = c.locker.TryLock(ctx, c.lockKey, c.cfg.LockTTL)
		if err != nil {
			c.mu.Unlock()
			return nil, fmt.Errorf("%w: %w", domain.ErrAlreadyRunning, err)
		}
	}

	id := uuid.NewString()
	delay := runtime.ComputeDelay(speed, c.cfg.Speed.Min, c.cfg.Speed.Max, c.cfg.Delay.Min, c.cfg.Delay.Max)
	hookCtx := context.WithoutCancel(ctx)

	var onStep func(domain.StepEvent)
	if c.hooks.OnStep != nil {
		onStep = func(ev domain.StepEvent) { c.hooks.OnStep(hookCtx, algorithm, ev) }
	}

	run := runtime.NewRun(runtime.RunConfig{
		ID:           id,
		Algorithm:    algorithm,
		Sort:         sort,
		Values:       array,
		Delay:        delay,
		PollInterval: c.cfg.PollInterval,
		EventBuffer:  c.cfg.EventBuffer,
		OnStep:       onStep,
		Logger:       c.logger,
	})
	h := &RunHandle{
		ctrl:    c,
		run:     run,
		initial: slices.Clone(array),
		done:    make(chan struct{}),
	}
	c.current = h
	c.transition(hookCtx, h, domain.StateRunning)
	c.mu.Unlock()

	c.flushStates()
	c.logger.Info("run started",
		"run_id", id,
		"algorithm", string(algorithm),
		"length", len(array),
		"delay", delay,
	)
	if c.hooks.OnRunStart != nil {
		c.hooks.OnRunStart(hookCtx, h.runEvent(nil))
	}

	run.Start()
	go c.watch(ctx, hookCtx, h, lease)
	return h, nil
}

// Pause holds the current run at its next suspension point.
// It is a no-op unless the state is Running.
func (c *Controller) Pause() {
	if h := c.Current(); h != nil {
		c.pauseRun(h)
	}
}

// Resume releases a paused run. It is a no-op unless the state is Paused.
func (c *Controller) Resume() {
	if h := c.Current(); h != nil {
		c.resumeRun(h)
	}
}

// Stop cancels the current run. It is legal from any state and idempotent;
// it does not wait for the run to exit (use RunHandle.Wait).
func (c *Controller) Stop() {
	if h := c.Current(); h != nil {
		c.stopRun(h)
	}
}

// watch waits for a run to exit while keeping its lease alive, then releases
// the lock and settles the state machine. A lost lease stops the run.
func (c *Controller) watch(ctx, hookCtx context.Context, h *RunHandle, lease ports.Lease) {
	var refresh <-chan time.Time
	if lease != nil && c.cfg.LockTTL > 0 {
		ticker := time.NewTicker(max(c.cfg.LockTTL/3, time.Millisecond))
		defer ticker.Stop()
		refresh = ticker.C
	}

	for running := true; running; {
		select {
		case <-h.run.Done():
			running = false
		case <-ctx.Done():
			c.stopRun(h)
			<-h.run.Done()
			running = false
		case <-refresh:
			err := lease.Refresh(hookCtx, c.cfg.LockTTL)
			switch {
			case errors.Is(err, domain.ErrLockLost):
				c.logger.Error("run lock lost, stopping run", "run_id", h.ID())
				refresh = nil
				c.stopRun(h)
			case err != nil:
				c.logger.Warn("failed to refresh run lock", "run_id", h.ID(), "error", err)
			}
		}
	}
	res := h.run.Result()

	if lease != nil {
		if err := lease.Unlock(hookCtx); err != nil {
			c.logger.Warn("failed to release run lock", "run_id", res.RunID, "error", err)
		}
	}

	c.mu.Lock()
	c.transition(hookCtx, h, domain.StateStopped)
	c.mu.Unlock()
	c.flushStates()

	c.logger.Info("run finished",
		"run_id", res.RunID,
		"outcome", string(res.Outcome),
		"events", res.Events,
		"duration", res.Duration,
	)
	if c.hooks.OnRunFinish != nil {
		c.hooks.OnRunFinish(hookCtx, h.runEvent(&res))
	}
	close(h.done)
}

func (c *Controller) pauseRun(h *RunHandle) {
	c.mu.Lock()
	if c.current != h || c.state != domain.StateRunning {
		c.mu.Unlock()
		return
	}
	h.run.Pause()
	c.transition(context.Background(), h, domain.StatePaused)
	c.mu.Unlock()
	c.flushStates()
}

func (c *Controller) resumeRun(h *RunHandle) {
	c.mu.Lock()
	if c.current != h || c.state != domain.StatePaused {
		c.mu.Unlock()
		return
	}
	h.run.Resume()
	c.transition(context.Background(), h, domain.StateRunning)
	c.mu.Unlock()
	c.flushStates()
}

// stopRun is Stop scoped to a specific handle.
func (c *Controller) stopRun(h *RunHandle) {
	c.mu.Lock()
	if c.current != h || !c.state.Active() {
		c.mu.Unlock()
		return
	}
	h.run.Cancel()
	c.transition(context.Background(), h, domain.StateStopping)
	c.mu.Unlock()
	c.flushStates()
}

type queuedState struct {
	ctx context.Context
	ev  *domain.StateEvent
}

// transition moves h (and the controller, if h is current) to next and queues
// the change for flushStates. Callers must hold c.mu.
func (c *Controller) transition(ctx context.Context, h *RunHandle, next domain.ExecutionState) {
	prev := domain.ExecutionState(h.state.Swap(int32(next)))
	if c.current == h {
		prev = c.state
		c.state = next
	}
	if prev == next {
		return
	}
	c.pending = append(c.pending, queuedState{
		ctx: ctx,
		ev: &domain.StateEvent{
			Timestamp: time.Now(),
			RunID:     h.ID(),
			From:      prev,
			To:        next,
		},
	})
}

// flushStates delivers queued transitions in the order they happened.
// Callers must not hold c.mu. OnStateChange must not drive the controller.
func (c *Controller) flushStates() {
	c.deliverMu.Lock()
	defer c.deliverMu.Unlock()

	c.mu.Lock()
	queued := c.pending
	c.pending = nil
	c.mu.Unlock()

	for _, q := range queued {
		c.logger.Debug("state changed", "run_id", q.ev.RunID, "from", q.ev.From.String(), "to", q.ev.To.String())
		if c.hooks.OnStateChange != nil {
			c.hooks.OnStateChange(q.ctx, q.ev)
		}
	}
}
