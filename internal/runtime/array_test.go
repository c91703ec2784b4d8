package runtime

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArrayState_Basics(t *testing.T) {
	input := []int{4, 9, 1}
	s := NewArrayState(input)
	input[0] = 100 // the state owns a copy

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 4, s.At(0))
	assert.Equal(t, 9, s.Max())

	s.Swap(0, 2)
	assert.Equal(t, []int{1, 9, 4}, s.Snapshot())

	s.Store(1, 12)
	assert.Equal(t, 12, s.Max())
	assert.Equal(t, []int{1, 12, 4}, s.Snapshot())
}

func TestArrayState_Empty(t *testing.T) {
	s := NewArrayState(nil)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.Max())
	assert.Empty(t, s.Snapshot())
}

func TestArrayState_ConcurrentReadsSeeWholeValues(t *testing.T) {
	s := NewArrayState([]int{1, 2})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 10000 {
			s.Swap(0, 1)
		}
	}()
	for range 10000 {
		v := s.At(0)
		assert.Contains(t, []int{1, 2}, v)
	}
	wg.Wait()
}
