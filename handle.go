package sortviz

import (
	"context"
	"slices"
	"sync/atomic"
	"time"

	"github.com/khshaikh19/sortviz/internal/runtime"
	"github.com/khshaikh19/sortviz/pkg/domain"
)

// ArrayView is a read-only view of a run's live array.
// Values may be one step behind the event stream but are never torn.
type ArrayView interface {
	Len() int
	At(i int) int
	Max() int
	Snapshot() []int
}

// RunHandle is the caller's grip on one run. A handle is not restartable:
// once its run has stopped, a new Start is required.
type RunHandle struct {
	ctrl    *Controller
	run     *runtime.Run
	initial []int
	state   atomic.Int32
	done    chan struct{}
}

// ID returns the unique run identifier.
func (h *RunHandle) ID() string { return h.run.ID() }

// Algorithm returns the algorithm being run.
func (h *RunHandle) Algorithm() domain.Algorithm { return h.run.Algorithm() }

// Delay returns the per-step delay fixed at Start.
func (h *RunHandle) Delay() time.Duration { return h.run.Delay() }

// Array returns the live array the run is sorting.
func (h *RunHandle) Array() ArrayView { return h.run.Array() }

// Initial returns a copy of the array as it was when the run started.
// Folding Events over it reproduces the run's array.
func (h *RunHandle) Initial() []int { return slices.Clone(h.initial) }

// Events returns the ordered event stream. It is closed when the run ends,
// whether it completed, was stopped or failed.
func (h *RunHandle) Events() <-chan domain.StepEvent { return h.run.Events() }

// Emitted returns how many events have been delivered so far.
func (h *RunHandle) Emitted() uint64 { return h.run.Emitted() }

// State returns this run's execution state. A run that is no longer the
// controller's current one is always Stopped.
func (h *RunHandle) State() domain.ExecutionState {
	return domain.ExecutionState(h.state.Load())
}

// Pause pauses this run if it is the controller's live run.
func (h *RunHandle) Pause() { h.ctrl.pauseRun(h) }

// Resume resumes this run if it is the controller's live run.
func (h *RunHandle) Resume() { h.ctrl.resumeRun(h) }

// Stop cancels this run. It is idempotent.
func (h *RunHandle) Stop() { h.ctrl.stopRun(h) }

// Done is closed once the run has exited and the controller is Stopped.
func (h *RunHandle) Done() <-chan struct{} { return h.done }

// Wait blocks until the run exits or ctx is done.
// A cancelled run is not an error: it returns OutcomeCancelled and a nil error.
// A failed run returns its Result together with Result.Err.
func (h *RunHandle) Wait(ctx context.Context) (domain.Result, error) {
	select {
	case <-h.done:
	case <-ctx.Done():
		return domain.Result{}, ctx.Err()
	}
	res := h.run.Result()
	if res.Outcome == domain.OutcomeFailed {
		return res, res.Err
	}
	return res, nil
}

func (h *RunHandle) runEvent(res *domain.Result) *domain.RunEvent {
	return &domain.RunEvent{
		Timestamp: time.Now(),
		RunID:     h.ID(),
		Algorithm: h.Algorithm(),
		Length:    h.run.Array().Len(),
		Delay:     h.Delay(),
		Result:    res,
	}
}
