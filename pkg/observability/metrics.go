package observability

import (
	"context"

	"github.com/khshaikh19/sortviz/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine collectors.
type Metrics struct {
	runsStarted  *prometheus.CounterVec
	runsFinished *prometheus.CounterVec
	steps        *prometheus.CounterVec
	transitions  *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	active       prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runsStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sortviz_runs_started_total",
				Help: "Total runs started by algorithm",
			},
			[]string{"algorithm"},
		),
		runsFinished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sortviz_runs_finished_total",
				Help: "Total runs finished by algorithm and outcome",
			},
			[]string{"algorithm", "outcome"},
		),
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sortviz_steps_total",
				Help: "Total step events emitted by algorithm and kind",
			},
			[]string{"algorithm", "kind"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sortviz_state_transitions_total",
				Help: "Total controller state transitions by target state",
			},
			[]string{"to"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sortviz_run_duration_seconds",
				Help:    "Wall-clock duration of runs",
				Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
			},
			[]string{"algorithm", "outcome"},
		),
		active: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "sortviz_active_runs",
				Help: "Number of runs currently live",
			},
		),
	}
	reg.MustRegister(m.runsStarted, m.runsFinished, m.steps, m.transitions, m.duration, m.active)
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(_ context.Context, e *domain.RunEvent) {
			m.runsStarted.WithLabelValues(string(e.Algorithm)).Inc()
			m.active.Inc()
		},
		OnRunFinish: func(_ context.Context, e *domain.RunEvent) {
			m.active.Dec()
			if e.Result == nil {
				return
			}
			labels := []string{string(e.Algorithm), string(e.Result.Outcome)}
			m.runsFinished.WithLabelValues(labels...).Inc()
			m.duration.WithLabelValues(labels...).Observe(e.Result.Duration.Seconds())
		},
		OnStateChange: func(_ context.Context, e *domain.StateEvent) {
			m.transitions.WithLabelValues(e.To.String()).Inc()
		},
		OnStep: func(_ context.Context, a domain.Algorithm, ev domain.StepEvent) {
			m.steps.WithLabelValues(string(a), string(ev.Kind)).Inc()
		},
	}
}

// ActiveGauge exposes the live-run gauge.
func (m *Metrics) ActiveGauge() prometheus.Gauge { return m.active }
