package observability

import (
	"context"
	"log/slog"

	"github.com/khshaikh19/sortviz/pkg/domain"
)

// Combine fans each hook out to every non-nil hook in sets, in order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, s := range sets {
		out.OnRunStart = chainRun(out.OnRunStart, s.OnRunStart)
		out.OnRunFinish = chainRun(out.OnRunFinish, s.OnRunFinish)
		out.OnStateChange = chainState(out.OnStateChange, s.OnStateChange)
		out.OnStep = chainStep(out.OnStep, s.OnStep)
	}
	return out
}

func chainRun(a, b func(context.Context, *domain.RunEvent)) func(context.Context, *domain.RunEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *domain.RunEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainState(a, b func(context.Context, *domain.StateEvent)) func(context.Context, *domain.StateEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *domain.StateEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainStep(a, b func(context.Context, domain.Algorithm, domain.StepEvent)) func(context.Context, domain.Algorithm, domain.StepEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, alg domain.Algorithm, ev domain.StepEvent) {
		a(ctx, alg, ev)
		b(ctx, alg, ev)
	}
}

// LogHooks logs run lifecycle events at Info and every step at Debug.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			logger.InfoContext(ctx, "run_start",
				"run_id", e.RunID,
				"algorithm", string(e.Algorithm),
				"length", e.Length,
				"delay", e.Delay,
			)
		},
		OnRunFinish: func(ctx context.Context, e *domain.RunEvent) {
			if e.Result == nil {
				return
			}
			logger.InfoContext(ctx, "run_finish",
				"run_id", e.RunID,
				"outcome", string(e.Result.Outcome),
				"events", e.Result.Events,
			)
		},
		OnStep: func(ctx context.Context, a domain.Algorithm, ev domain.StepEvent) {
			logger.DebugContext(ctx, "step", "algorithm", string(a), "seq", ev.Seq, "event", ev.String())
		},
	}
}
