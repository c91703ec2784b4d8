package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/khshaikh19/sortviz/internal/logging"
	"github.com/khshaikh19/sortviz/pkg/domain"
)

// Source is a live run as seen by the Runner. *sortviz.RunHandle satisfies it.
type Source interface {
	ID() string
	Algorithm() domain.Algorithm
	Delay() time.Duration
	Initial() []int
	Events() <-chan domain.StepEvent
	Stop()
	Wait(ctx context.Context) (domain.Result, error)
}

// Runner drains a run's event stream into a Handler.
type Runner struct {
	// Handler is the presentation strategy. If nil, a TextHandler on Stdout is used.
	Handler Handler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger
}

// NewRunner creates a new Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.Logger == nil {
		r.Logger = logging.NewNop()
	}
	return r
}

// Run renders src until its event stream is exhausted.
// Cancelling ctx stops the run; the remaining events are still drained so
// the view matches the run's final array. A Handler error also stops the run.
func (r *Runner) Run(ctx context.Context, src Source) (domain.Result, error) {
	handler := r.resolveHandler()
	logger := r.Logger.With("run_id", src.ID())
	view := NewView(src.Initial())
	info := RunInfo{
		ID:        src.ID(),
		Algorithm: src.Algorithm(),
		Delay:     src.Delay(),
		Initial:   src.Initial(),
	}

	var handlerErr error
	if err := handler.Begin(ctx, info, view); err != nil {
		handlerErr = fmt.Errorf("render error: %w", err)
		src.Stop()
	}

	events := src.Events()
	done := ctx.Done()
loop:
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				break loop
			}
			view.Apply(ev)
			if handlerErr != nil {
				continue
			}
			if err := handler.Step(ctx, view, ev); err != nil {
				handlerErr = fmt.Errorf("render error: %w", err)
				logger.Debug("handler failed, stopping run", "error", err)
				src.Stop()
			}
		case <-done:
			logger.Debug("context done, stopping run", "error", ctx.Err())
			src.Stop()
			done = nil
		}
	}

	endCtx := context.WithoutCancel(ctx)
	res, err := src.Wait(endCtx)
	if handlerErr != nil {
		return res, handlerErr
	}
	if endErr := handler.End(endCtx, view, res); endErr != nil {
		return res, fmt.Errorf("render error: %w", endErr)
	}
	return res, err
}

// resolveHandler ensures a valid Handler is set.
func (r *Runner) resolveHandler() Handler {
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdout)
	}
	return r.Handler
}
