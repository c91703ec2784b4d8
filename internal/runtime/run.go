package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/khshaikh19/sortviz/internal/algorithms"
	"github.com/khshaikh19/sortviz/internal/logging"
	"github.com/khshaikh19/sortviz/pkg/domain"
)

// RunConfig describes one run. Sort is resolved by the caller.
type RunConfig struct {
	ID           string
	Algorithm    domain.Algorithm
	Sort         algorithms.SortFunc
	Values       []int
	Delay        time.Duration
	PollInterval time.Duration
	EventBuffer  int
	OnStep       func(domain.StepEvent)
	Logger       *slog.Logger
}

// Run is a single execution of an algorithm over its own ArrayState.
// It is not restartable.
type Run struct {
	id        string
	algorithm domain.Algorithm
	sort      algorithms.SortFunc
	array     *ArrayState
	gate      *Gate
	limiter   *RateLimiter
	events    chan domain.StepEvent
	logger    *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	tracer *tracer

	startOnce sync.Once
	done      chan struct{}
	result    domain.Result
}

// NewRun prepares a run. Nothing executes until Start.
func NewRun(cfg RunConfig) *Run {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	r := &Run{
		id:        cfg.ID,
		algorithm: cfg.Algorithm,
		sort:      cfg.Sort,
		array:     NewArrayState(cfg.Values),
		gate:      NewGate(cfg.PollInterval),
		limiter:   NewRateLimiter(cfg.Delay),
		events:    make(chan domain.StepEvent, max(cfg.EventBuffer, 0)),
		logger:    logger.With("run_id", cfg.ID, "algorithm", string(cfg.Algorithm)),
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	r.tracer = &tracer{
		ctx:     ctx,
		array:   r.array,
		events:  r.events,
		gate:    r.gate,
		limiter: r.limiter,
		onStep:  cfg.OnStep,
	}
	return r
}

// Start launches the run goroutine. Later calls are no-ops.
func (r *Run) Start() {
	r.startOnce.Do(func() {
		go r.execute()
	})
}

// ID returns the run identifier.
func (r *Run) ID() string { return r.id }

// Algorithm returns the algorithm being run.
func (r *Run) Algorithm() domain.Algorithm { return r.algorithm }

// Array returns the live array. Callers must treat it as read-only.
func (r *Run) Array() *ArrayState { return r.array }

// Delay returns the fixed per-step delay.
func (r *Run) Delay() time.Duration { return r.limiter.Delay() }

// Events is closed once the run has finished.
func (r *Run) Events() <-chan domain.StepEvent { return r.events }

// Pause closes the gate; it reports whether anything changed.
func (r *Run) Pause() bool { return r.gate.Pause() }

// Resume opens the gate; it reports whether anything changed.
func (r *Run) Resume() bool { return r.gate.Resume() }

// Paused reports whether the run is held at the gate.
func (r *Run) Paused() bool { return r.gate.Paused() }

// Cancel signals the run to stop. Safe to call repeatedly and concurrently.
func (r *Run) Cancel() { r.cancel() }

// Emitted returns how many events have been delivered so far.
func (r *Run) Emitted() uint64 { return r.tracer.Emitted() }

// Done is closed after Events has been closed and Result is final.
func (r *Run) Done() <-chan struct{} { return r.done }

// Result is valid once Done is closed.
func (r *Run) Result() domain.Result {
	<-r.done
	return r.result
}

func (r *Run) execute() {
	start := time.Now()
	err := r.sortSafely()

	res := domain.Result{
		RunID:     r.id,
		Algorithm: r.algorithm,
		Outcome:   domain.OutcomeCompleted,
		Events:    r.tracer.Emitted(),
		Duration:  time.Since(start),
	}
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrCancelled):
		res.Outcome = domain.OutcomeCancelled
	default:
		res.Outcome = domain.OutcomeFailed
		res.Err = err
		r.logger.Error("run failed", "error", err)
	}
	r.result = res

	r.cancel()
	close(r.events)
	close(r.done)
}

// sortSafely runs the algorithm, turning a panic into ErrInternal.
// Arrays shorter than two elements are already sorted and emit nothing.
func (r *Run) sortSafely() (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", domain.ErrInternal, p)
		}
	}()
	if r.array.Len() < 2 {
		return nil
	}
	if r.sort == nil {
		return fmt.Errorf("%w: no sort for %q", domain.ErrInternal, r.algorithm)
	}
	return r.sort(r.tracer)
}
