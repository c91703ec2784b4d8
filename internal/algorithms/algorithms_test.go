package algorithms_test

import (
	"cmp"
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/khshaikh19/sortviz/internal/algorithms"
	"github.com/khshaikh19/sortviz/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStop = errors.New("stop")

// recorder is an in-memory Instrument that logs every operation.
// With limit > 0 it refuses the operation after limit events, like a stopped run.
type recorder struct {
	a      []int
	events []domain.StepEvent
	limit  int
}

func newRecorder(values ...int) *recorder {
	return &recorder{a: slices.Clone(values)}
}

func (r *recorder) record(ev domain.StepEvent) error {
	if r.limit > 0 && len(r.events) >= r.limit {
		return errStop
	}
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) Len() int     { return len(r.a) }
func (r *recorder) At(i int) int { return r.a[i] }

func (r *recorder) Compare(i, j int) (int, error) {
	return r.CompareHeld(i, j, r.a[i], r.a[j])
}

func (r *recorder) CompareHeld(i, j, x, y int) (int, error) {
	if err := r.record(domain.Compare(i, j)); err != nil {
		return 0, err
	}
	return cmp.Compare(x, y), nil
}

func (r *recorder) Swap(i, j int) error {
	if err := r.record(domain.Swap(i, j)); err != nil {
		return err
	}
	r.a[i], r.a[j] = r.a[j], r.a[i]
	return nil
}

func (r *recorder) Overwrite(i, v int) error {
	if err := r.record(domain.Overwrite(i, v)); err != nil {
		return err
	}
	r.a[i] = v
	return nil
}

func (r *recorder) MarkSorted(i int) error { return r.record(domain.MarkSorted(i)) }
func (r *recorder) MarkAllSorted() error   { return r.record(domain.MarkAllSorted()) }

func (r *recorder) trace() []string {
	out := make([]string, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.String()
	}
	return out
}

func TestAlgorithms_ExactSequences(t *testing.T) {
	tests := []struct {
		name      string
		algorithm domain.Algorithm
		input     []int
		want      []string
	}{
		{
			name:      "Bubble Four Elements",
			algorithm: domain.AlgorithmBubble,
			input:     []int{5, 3, 8, 1},
			want: []string{
				"Compare(0,1)", "Swap(0,1)", "Compare(1,2)", "Compare(2,3)", "Swap(2,3)",
				"Compare(0,1)", "Compare(1,2)", "Swap(1,2)",
				"Compare(0,1)", "Swap(0,1)",
				"MarkAllSorted()",
			},
		},
		{
			name:      "Bubble Already Sorted Exits Early",
			algorithm: domain.AlgorithmBubble,
			input:     []int{1, 2, 3},
			want:      []string{"Compare(0,1)", "Compare(1,2)", "MarkAllSorted()"},
		},
		{
			name:      "Selection Pair",
			algorithm: domain.AlgorithmSelection,
			input:     []int{2, 1},
			want:      []string{"Compare(0,1)", "Swap(0,1)", "MarkAllSorted()"},
		},
		{
			name:      "Selection Skips Self Swap",
			algorithm: domain.AlgorithmSelection,
			input:     []int{1, 3, 2},
			want:      []string{"Compare(0,1)", "Compare(0,2)", "Compare(1,2)", "Swap(1,2)", "MarkAllSorted()"},
		},
		{
			name:      "Insertion Shifts With Overwrites",
			algorithm: domain.AlgorithmInsertion,
			input:     []int{3, 1, 2},
			want: []string{
				"Compare(0,1)", "Overwrite(1,3)", "Overwrite(0,1)",
				"Compare(1,2)", "Overwrite(2,3)", "Compare(0,1)", "Overwrite(1,2)",
				"MarkAllSorted()",
			},
		},
		{
			name:      "Merge Three Elements",
			algorithm: domain.AlgorithmMerge,
			input:     []int{2, 1, 3},
			want: []string{
				"Compare(0,1)", "Overwrite(0,1)", "Overwrite(1,2)",
				"Compare(0,2)", "Overwrite(0,1)", "Compare(1,2)", "Overwrite(1,2)", "Overwrite(2,3)",
				"MarkAllSorted()",
			},
		},
		{
			name:      "Quick Lomuto Partition",
			algorithm: domain.AlgorithmQuick,
			input:     []int{3, 1, 2},
			want:      []string{"Compare(0,2)", "Compare(1,2)", "Swap(0,1)", "Swap(1,2)", "MarkAllSorted()"},
		},
		{
			name:      "Heap Three Elements",
			algorithm: domain.AlgorithmHeap,
			input:     []int{1, 3, 2},
			want: []string{
				"Compare(1,0)", "Compare(2,1)", "Swap(0,1)",
				"Swap(0,2)", "Compare(1,0)", "MarkSorted(2)",
				"Swap(0,1)", "MarkSorted(1)",
				"Swap(0,0)", "MarkSorted(0)",
				"MarkAllSorted()",
			},
		},
		{
			name:      "Heap Single Element",
			algorithm: domain.AlgorithmHeap,
			input:     []int{7},
			want:      []string{"Swap(0,0)", "MarkSorted(0)", "MarkAllSorted()"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sort, err := algorithms.Lookup(tt.algorithm)
			require.NoError(t, err)

			rec := newRecorder(tt.input...)
			require.NoError(t, sort(rec))

			assert.Equal(t, tt.want, rec.trace())
			assert.True(t, slices.IsSorted(rec.a), "final array %v", rec.a)
		})
	}
}

func TestAlgorithms_SortRandomInputs(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	inputs := [][]int{
		{},
		{42},
		{2, 2, 2, 2},
		{9, 8, 7, 6, 5, 4, 3, 2, 1},
	}
	for range 20 {
		n := rng.IntN(60) + 2
		in := make([]int, n)
		for i := range in {
			in[i] = rng.IntN(20) + 5
		}
		inputs = append(inputs, in)
	}

	for _, a := range domain.Algorithms() {
		t.Run(string(a), func(t *testing.T) {
			sort, err := algorithms.Lookup(a)
			require.NoError(t, err)
			for _, in := range inputs {
				rec := newRecorder(in...)
				require.NoError(t, sort(rec))

				want := slices.Clone(in)
				slices.Sort(want)
				assert.Equal(t, want, rec.a, "input %v", in)

				for _, ev := range rec.events {
					assert.GreaterOrEqual(t, ev.I, 0)
					assert.Less(t, ev.I, max(len(in), 1))
					if ev.Kind == domain.StepCompare || ev.Kind == domain.StepSwap {
						assert.Less(t, ev.J, len(in))
					}
				}
			}
		})
	}
}

func TestAlgorithms_StopAtFirstError(t *testing.T) {
	input := []int{9, 4, 7, 1, 8, 2, 6, 3, 5}
	for _, a := range domain.Algorithms() {
		t.Run(string(a), func(t *testing.T) {
			sort, err := algorithms.Lookup(a)
			require.NoError(t, err)

			rec := newRecorder(input...)
			rec.limit = 5
			err = sort(rec)

			assert.ErrorIs(t, err, errStop)
			assert.Len(t, rec.events, 5, "no operation may run after the instrument fails")

			// Replaying the applied events over the input must reproduce the array.
			replay := slices.Clone(input)
			for _, ev := range rec.events {
				switch ev.Kind {
				case domain.StepSwap:
					replay[ev.I], replay[ev.J] = replay[ev.J], replay[ev.I]
				case domain.StepOverwrite:
					replay[ev.I] = ev.Value
				}
			}
			assert.Equal(t, replay, rec.a)
		})
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := algorithms.Lookup("bogo")
	assert.ErrorIs(t, err, domain.ErrUnknownAlgorithm)
}
