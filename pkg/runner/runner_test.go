package runner

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/khshaikh19/sortviz"
	"github.com/khshaikh19/sortviz/pkg/config"
	"github.com/khshaikh19/sortviz/pkg/domain"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource replays a fixed stream; Stop truncates it.
type fakeSource struct {
	initial []int
	events  chan domain.StepEvent

	mu      sync.Mutex
	stopped bool
	stopCh  chan struct{}
}

func newFakeSource(initial []int, events ...domain.StepEvent) *fakeSource {
	s := &fakeSource{
		initial: initial,
		events:  make(chan domain.StepEvent),
		stopCh:  make(chan struct{}),
	}
	go func() {
		defer close(s.events)
		for i, ev := range events {
			ev.Seq = uint64(i + 1)
			select {
			case s.events <- ev:
			case <-s.stopCh:
				return
			}
		}
	}()
	return s
}

func (s *fakeSource) ID() string                      { return "fake" }
func (s *fakeSource) Algorithm() domain.Algorithm     { return domain.AlgorithmBubble }
func (s *fakeSource) Delay() time.Duration            { return 0 }
func (s *fakeSource) Initial() []int                  { return append([]int(nil), s.initial...) }
func (s *fakeSource) Events() <-chan domain.StepEvent { return s.events }

func (s *fakeSource) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		s.stopped = true
		close(s.stopCh)
	}
}

func (s *fakeSource) Wait(ctx context.Context) (domain.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return domain.Result{RunID: "fake", Outcome: domain.OutcomeCancelled}, nil
	}
	return domain.Result{RunID: "fake", Outcome: domain.OutcomeCompleted}, nil
}

type recordingHandler struct {
	began  bool
	steps  []domain.StepEvent
	final  []int
	result domain.Result
	failAt int
}

func (h *recordingHandler) Begin(ctx context.Context, info RunInfo, view *View) error {
	h.began = true
	return nil
}

func (h *recordingHandler) Step(ctx context.Context, view *View, ev domain.StepEvent) error {
	h.steps = append(h.steps, ev)
	if h.failAt > 0 && len(h.steps) == h.failAt {
		return errors.New("screen gone")
	}
	return nil
}

func (h *recordingHandler) End(ctx context.Context, view *View, res domain.Result) error {
	h.final = append([]int(nil), view.Values...)
	h.result = res
	return nil
}

func TestRunner_DrainsInOrder(t *testing.T) {
	src := newFakeSource([]int{2, 1}, domain.Compare(0, 1), domain.Swap(0, 1), domain.MarkAllSorted())
	h := &recordingHandler{}

	res, err := NewRunner(WithHandler(h)).Run(context.Background(), src)
	require.NoError(t, err)

	assert.True(t, h.began)
	require.Len(t, h.steps, 3)
	for i, ev := range h.steps {
		assert.Equal(t, uint64(i+1), ev.Seq)
	}
	assert.Equal(t, []int{1, 2}, h.final)
	assert.Equal(t, domain.OutcomeCompleted, res.Outcome)
	assert.Equal(t, res, h.result)
}

func TestRunner_HandlerErrorStopsRun(t *testing.T) {
	src := newFakeSource([]int{3, 2, 1},
		domain.Compare(0, 1), domain.Swap(0, 1), domain.Compare(1, 2), domain.Swap(1, 2),
	)
	h := &recordingHandler{failAt: 1}

	res, err := NewRunner(WithHandler(h)).Run(context.Background(), src)
	assert.ErrorContains(t, err, "screen gone")
	assert.Equal(t, domain.OutcomeCancelled, res.Outcome)
	assert.Len(t, h.steps, 1, "no further steps reach a failed handler")
}

func TestRunner_ContextCancelStopsRun(t *testing.T) {
	ctrl := sortviz.New(sortviz.WithConfig(slowConfig()))
	run, err := ctrl.Start(context.Background(), domain.AlgorithmBubble, []int{9, 8, 7, 6, 5, 4, 3, 2, 1}, 1)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	h := &recordingHandler{}
	res, err := NewRunner(WithHandler(h)).Run(ctx, run)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeCancelled, res.Outcome)
	assert.Equal(t, run.Array().Snapshot(), h.final, "view equals the run's array after cancellation")
}

func TestRunner_RealRunWithTextHandler(t *testing.T) {
	ctrl := sortviz.New(sortviz.WithConfig(fastConfig()))
	run, err := ctrl.Start(context.Background(), domain.AlgorithmMerge, []int{40, 10, 30, 20}, 200)
	require.NoError(t, err)

	var buf bytes.Buffer
	h := NewTextHandler(&buf,
		WithTextHandlerProfile(termenv.Ascii),
		WithTextHandlerRedraw(false),
		WithTextHandlerFrameInterval(0),
		WithTextHandlerRows(4),
	)
	res, err := NewRunner(WithHandler(h)).Run(context.Background(), run)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeCompleted, res.Outcome)
	assert.Contains(t, buf.String(), "Merge Sort: completed")
	assert.Contains(t, buf.String(), "MarkAllSorted()")
}

func fastConfig() config.Config {
	cfg := config.Default()
	cfg.Delay.Min, cfg.Delay.Max = 0, 0
	cfg.PollInterval = 5 * time.Millisecond
	return cfg
}

func slowConfig() config.Config {
	cfg := fastConfig()
	cfg.Delay.Min, cfg.Delay.Max = 5*time.Millisecond, 5*time.Millisecond
	return cfg
}
