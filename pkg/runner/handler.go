package runner

import (
	"context"
	"errors"
	"time"

	"github.com/khshaikh19/sortviz/pkg/domain"
)

// RunInfo describes the run a Handler is about to render.
type RunInfo struct {
	ID        string           `json:"run_id"`
	Algorithm domain.Algorithm `json:"algorithm"`
	Delay     time.Duration    `json:"delay"`
	Initial   []int            `json:"initial"`
}

// Handler defines the strategy for presenting a run.
// This allows switching between Text (terminal) and JSON (structured) output.
type Handler interface {
	// Begin is called once, before the first event.
	Begin(ctx context.Context, info RunInfo, view *View) error

	// Step is called after each event has been folded into view.
	Step(ctx context.Context, view *View, ev domain.StepEvent) error

	// End is called once the stream is exhausted.
	End(ctx context.Context, view *View, res domain.Result) error
}

// MultiHandler fans every call out to each handler in order.
// It stops at the first error.
func MultiHandler(handlers ...Handler) Handler {
	return multiHandler(handlers)
}

type multiHandler []Handler

func (m multiHandler) Begin(ctx context.Context, info RunInfo, view *View) error {
	for _, h := range m {
		if err := h.Begin(ctx, info, view); err != nil {
			return err
		}
	}
	return nil
}

func (m multiHandler) Step(ctx context.Context, view *View, ev domain.StepEvent) error {
	for _, h := range m {
		if err := h.Step(ctx, view, ev); err != nil {
			return err
		}
	}
	return nil
}

func (m multiHandler) End(ctx context.Context, view *View, res domain.Result) error {
	var errs []error
	for _, h := range m {
		errs = append(errs, h.End(ctx, view, res))
	}
	return errors.Join(errs...)
}

// Discard is a Handler that ignores everything.
var Discard Handler = discard{}

type discard struct{}

func (discard) Begin(context.Context, RunInfo, *View) error { return nil }

func (discard) Step(context.Context, *View, domain.StepEvent) error { return nil }

func (discard) End(context.Context, *View, domain.Result) error { return nil }
