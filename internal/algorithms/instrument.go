package algorithms

import (
	"fmt"

	"github.com/khshaikh19/sortviz/pkg/domain"
)

// Instrument is the array as seen by an algorithm.
// Every method except Len and At emits one StepEvent.
type Instrument interface {
	Len() int
	// At reads a value without emitting anything.
	At(i int) int
	// Compare emits Compare(i, j) and orders a[i] against a[j] (cmp.Compare semantics).
	Compare(i, j int) (int, error)
	// CompareHeld emits Compare(i, j) but orders x against y, values the
	// algorithm holds aside (an insertion key, merge buffers).
	CompareHeld(i, j, x, y int) (int, error)
	Swap(i, j int) error
	Overwrite(i, v int) error
	MarkSorted(i int) error
	MarkAllSorted() error
}

// SortFunc runs one algorithm to completion or to the first Instrument error.
type SortFunc func(Instrument) error

var registry = map[domain.Algorithm]SortFunc{
	domain.AlgorithmBubble:    Bubble,
	domain.AlgorithmSelection: Selection,
	domain.AlgorithmInsertion: Insertion,
	domain.AlgorithmMerge:     Merge,
	domain.AlgorithmQuick:     Quick,
	domain.AlgorithmHeap:      Heap,
}

// Lookup returns the sort registered for a.
func Lookup(a domain.Algorithm) (SortFunc, error) {
	fn, ok := registry[a]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownAlgorithm, a)
	}
	return fn, nil
}
