package runtime

import (
	"cmp"
	"context"
	"sync/atomic"

	"github.com/khshaikh19/sortviz/pkg/domain"
)

// tracer implements algorithms.Instrument on top of an ArrayState.
//
// Each mutating or inspecting call:
//  1. emits its event (blocking on a full channel, abandoned on cancel),
//  2. applies the mutation the event describes,
//  3. returns ErrCancelled if the run was stopped,
//  4. waits at the pause gate,
//  5. sleeps the per-step delay.
//
// Mark events only do step 1.
type tracer struct {
	ctx     context.Context
	array   *ArrayState
	events  chan<- domain.StepEvent
	gate    *Gate
	limiter *RateLimiter
	onStep  func(domain.StepEvent)

	seq atomic.Uint64
}

func (t *tracer) Len() int     { return t.array.Len() }
func (t *tracer) At(i int) int { return t.array.At(i) }

func (t *tracer) Compare(i, j int) (int, error) {
	return t.CompareHeld(i, j, t.array.At(i), t.array.At(j))
}

func (t *tracer) CompareHeld(i, j, x, y int) (int, error) {
	if err := t.step(domain.Compare(i, j), nil); err != nil {
		return 0, err
	}
	return cmp.Compare(x, y), nil
}

func (t *tracer) Swap(i, j int) error {
	return t.step(domain.Swap(i, j), func() { t.array.Swap(i, j) })
}

func (t *tracer) Overwrite(i, v int) error {
	return t.step(domain.Overwrite(i, v), func() { t.array.Store(i, v) })
}

func (t *tracer) MarkSorted(i int) error {
	return t.emit(domain.MarkSorted(i))
}

func (t *tracer) MarkAllSorted() error {
	return t.emit(domain.MarkAllSorted())
}

// Emitted returns how many events reached the channel.
func (t *tracer) Emitted() uint64 { return t.seq.Load() }

func (t *tracer) step(ev domain.StepEvent, apply func()) error {
	if err := t.emit(ev); err != nil {
		return err
	}
	if apply != nil {
		apply()
	}
	if t.ctx.Err() != nil {
		return domain.ErrCancelled
	}
	if err := t.gate.Wait(t.ctx); err != nil {
		return domain.ErrCancelled
	}
	if err := t.limiter.Await(t.ctx); err != nil {
		return domain.ErrCancelled
	}
	return nil
}

func (t *tracer) emit(ev domain.StepEvent) error {
	if t.ctx.Err() != nil {
		return domain.ErrCancelled
	}
	ev.Seq = t.seq.Load() + 1
	select {
	case t.events <- ev:
	case <-t.ctx.Done():
		return domain.ErrCancelled
	}
	t.seq.Store(ev.Seq)
	if t.onStep != nil {
		t.onStep(ev)
	}
	return nil
}
