package runtime

import "sync/atomic"

// ArrayState is the array being sorted. Each slot is an atomic word, so a
// renderer reading concurrently sees whole values, at worst one step stale.
// Only the run goroutine writes.
type ArrayState struct {
	values []atomic.Int64
	max    atomic.Int64
}

// NewArrayState copies values into a fresh state.
func NewArrayState(values []int) *ArrayState {
	s := &ArrayState{values: make([]atomic.Int64, len(values))}
	for i, v := range values {
		s.values[i].Store(int64(v))
		if i == 0 || int64(v) > s.max.Load() {
			s.max.Store(int64(v))
		}
	}
	return s
}

// Len is fixed for the lifetime of the state.
func (s *ArrayState) Len() int { return len(s.values) }

// At returns the value at i.
func (s *ArrayState) At(i int) int { return int(s.values[i].Load()) }

// Max returns the largest value present, 0 for an empty array.
func (s *ArrayState) Max() int { return int(s.max.Load()) }

// Store writes v at i.
func (s *ArrayState) Store(i, v int) {
	s.values[i].Store(int64(v))
	if int64(v) > s.max.Load() {
		s.max.Store(int64(v))
	}
}

// Swap exchanges the values at i and j.
func (s *ArrayState) Swap(i, j int) {
	vi := s.values[i].Load()
	s.values[i].Store(s.values[j].Load())
	s.values[j].Store(vi)
}

// Snapshot copies the current values.
func (s *ArrayState) Snapshot() []int {
	out := make([]int, len(s.values))
	for i := range s.values {
		out[i] = int(s.values[i].Load())
	}
	return out
}
