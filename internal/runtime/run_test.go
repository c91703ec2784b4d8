package runtime_test

import (
	"slices"
	"sync/atomic"
	"testing"
	"time"

	"github.com/khshaikh19/sortviz/internal/algorithms"
	"github.com/khshaikh19/sortviz/internal/runtime"
	"github.com/khshaikh19/sortviz/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRun(t *testing.T, a domain.Algorithm, values []int, delay time.Duration, buffer int) *runtime.Run {
	t.Helper()
	sort, err := algorithms.Lookup(a)
	require.NoError(t, err)
	return runtime.NewRun(runtime.RunConfig{
		ID:           "test-run",
		Algorithm:    a,
		Sort:         sort,
		Values:       values,
		Delay:        delay,
		PollInterval: 10 * time.Millisecond,
		EventBuffer:  buffer,
	})
}

func drain(t *testing.T, ch <-chan domain.StepEvent) []domain.StepEvent {
	t.Helper()
	var out []domain.StepEvent
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-timeout:
			t.Fatal("event stream did not close")
			return out
		}
	}
}

func replay(input []int, events []domain.StepEvent) []int {
	out := slices.Clone(input)
	for _, ev := range events {
		switch ev.Kind {
		case domain.StepSwap:
			out[ev.I], out[ev.J] = out[ev.J], out[ev.I]
		case domain.StepOverwrite:
			out[ev.I] = ev.Value
		}
	}
	return out
}

func ops(events []domain.StepEvent) []domain.StepEvent {
	out := make([]domain.StepEvent, len(events))
	for i, ev := range events {
		out[i] = ev.Op()
	}
	return out
}

var sample = []int{42, 7, 19, 88, 3, 56, 23, 71, 5, 64, 12, 37}

func TestRun_CompletesAndSorts(t *testing.T) {
	for _, a := range domain.Algorithms() {
		t.Run(string(a), func(t *testing.T) {
			r := newRun(t, a, sample, 0, 16)
			r.Start()
			events := drain(t, r.Events())
			res := r.Result()

			assert.Equal(t, domain.OutcomeCompleted, res.Outcome)
			assert.NoError(t, res.Err)
			assert.Equal(t, uint64(len(events)), res.Events)
			assert.True(t, slices.IsSorted(r.Array().Snapshot()))
			assert.Equal(t, r.Array().Snapshot(), replay(sample, events), "events fold to the final array")
			assert.Equal(t, domain.StepMarkAllSorted, events[len(events)-1].Kind)

			for i, ev := range events {
				assert.Equal(t, uint64(i+1), ev.Seq)
			}
		})
	}
}

func TestRun_DeterministicAcrossSpeeds(t *testing.T) {
	input := []int{9, 2, 7, 4, 5}
	for _, a := range domain.Algorithms() {
		t.Run(string(a), func(t *testing.T) {
			fast := newRun(t, a, input, 0, 0)
			fast.Start()
			fastEvents := drain(t, fast.Events())

			slow := newRun(t, a, input, time.Millisecond, 4)
			slow.Start()
			slowEvents := drain(t, slow.Events())

			assert.Equal(t, fastEvents, slowEvents)
		})
	}
}

func TestRun_DegenerateInputEmitsNothing(t *testing.T) {
	for _, input := range [][]int{nil, {7}} {
		r := newRun(t, domain.AlgorithmMerge, input, time.Second, 0)
		r.Start()
		events := drain(t, r.Events())
		res := r.Result()

		assert.Empty(t, events)
		assert.Equal(t, domain.OutcomeCompleted, res.Outcome)
		assert.Equal(t, uint64(0), res.Events)
	}
}

func TestRun_CancelWhileBackpressured(t *testing.T) {
	r := newRun(t, domain.AlgorithmBubble, sample, 0, 0)
	r.Start()

	first := <-r.Events()
	assert.Equal(t, uint64(1), first.Seq)

	// Nobody reads: the producer is blocked on the unbuffered channel.
	start := time.Now()
	r.Cancel()
	select {
	case <-r.Done():
	case <-time.After(200 * time.Millisecond):
		t.Fatal("run did not observe cancellation while blocked on send")
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	rest := drain(t, r.Events())
	res := r.Result()
	assert.Equal(t, domain.OutcomeCancelled, res.Outcome)
	assert.NoError(t, res.Err)

	all := append([]domain.StepEvent{first}, rest...)
	assert.Equal(t, replay(sample, all), r.Array().Snapshot(), "no mutation beyond the last delivered event")
}

func TestRun_CancelWhilePaused(t *testing.T) {
	r := newRun(t, domain.AlgorithmQuick, sample, 0, 64)
	r.Pause()
	r.Start()

	// The first event goes out, then the run parks at the gate.
	first := <-r.Events()
	require.True(t, r.Paused())

	select {
	case <-r.Events():
		t.Fatal("a paused run emitted another event")
	case <-time.After(30 * time.Millisecond):
	}

	start := time.Now()
	r.Cancel()
	select {
	case <-r.Done():
	case <-time.After(time.Second):
		t.Fatal("stop during pause was not honoured")
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	rest := drain(t, r.Events())
	assert.Empty(t, rest)
	assert.Equal(t, domain.OutcomeCancelled, r.Result().Outcome)
	assert.Equal(t, replay(sample, []domain.StepEvent{first}), r.Array().Snapshot())
}

func TestRun_PauseResumeIsTransparent(t *testing.T) {
	for _, a := range domain.Algorithms() {
		t.Run(string(a), func(t *testing.T) {
			ref := newRun(t, a, sample, 0, 0)
			ref.Start()
			want := drain(t, ref.Events())

			r := newRun(t, a, sample, 0, 0)
			r.Start()
			var got []domain.StepEvent
			for ev := range r.Events() {
				got = append(got, ev)
				if len(got) == 3 {
					r.Pause()
					time.Sleep(15 * time.Millisecond)
					r.Resume()
				}
			}

			assert.Equal(t, ops(want), ops(got))
			assert.Equal(t, ref.Array().Snapshot(), r.Array().Snapshot())
			assert.Equal(t, domain.OutcomeCompleted, r.Result().Outcome)
		})
	}
}

func TestRun_PanicBecomesInternalFailure(t *testing.T) {
	var calls atomic.Int32
	r := runtime.NewRun(runtime.RunConfig{
		ID:        "boom",
		Algorithm: domain.AlgorithmBubble,
		Sort: func(in algorithms.Instrument) error {
			calls.Add(1)
			if err := in.Swap(0, 1); err != nil {
				return err
			}
			panic("unexpected")
		},
		Values:      []int{2, 1, 3},
		EventBuffer: 8,
	})
	r.Start()
	events := drain(t, r.Events())
	res := r.Result()

	assert.Equal(t, domain.OutcomeFailed, res.Outcome)
	assert.ErrorIs(t, res.Err, domain.ErrInternal)
	assert.Len(t, events, 1)
	assert.Equal(t, 3, r.Array().Len())
	assert.Equal(t, int32(1), calls.Load())
}

func TestRun_OnStepSeesEveryEvent(t *testing.T) {
	var seen atomic.Int64
	sort, err := algorithms.Lookup(domain.AlgorithmHeap)
	require.NoError(t, err)
	r := runtime.NewRun(runtime.RunConfig{
		ID:          "hooks",
		Algorithm:   domain.AlgorithmHeap,
		Sort:        sort,
		Values:      sample,
		EventBuffer: 8,
		OnStep:      func(domain.StepEvent) { seen.Add(1) },
	})
	r.Start()
	events := drain(t, r.Events())
	<-r.Done()
	assert.Equal(t, int64(len(events)), seen.Load())
}

func TestRun_StartIsIdempotent(t *testing.T) {
	r := newRun(t, domain.AlgorithmSelection, []int{3, 2, 1}, 0, 32)
	r.Start()
	r.Start()
	events := drain(t, r.Events())
	assert.Equal(t, domain.OutcomeCompleted, r.Result().Outcome)
	assert.Equal(t, []int{1, 2, 3}, r.Array().Snapshot())
	assert.NotEmpty(t, events)
}
