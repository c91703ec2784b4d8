package domain

import (
	"fmt"
	"strings"
)

// Algorithm selects which instrumented sort a run executes.
type Algorithm string

const (
	AlgorithmBubble    Algorithm = "bubble"
	AlgorithmSelection Algorithm = "selection"
	AlgorithmInsertion Algorithm = "insertion"
	AlgorithmMerge     Algorithm = "merge"
	AlgorithmQuick     Algorithm = "quick"
	AlgorithmHeap      Algorithm = "heap"
)

// Algorithms lists every supported algorithm in menu order.
func Algorithms() []Algorithm {
	return []Algorithm{
		AlgorithmBubble,
		AlgorithmSelection,
		AlgorithmInsertion,
		AlgorithmMerge,
		AlgorithmQuick,
		AlgorithmHeap,
	}
}

// ParseAlgorithm resolves a user supplied name.
// Matching is case-insensitive and accepts menu labels such as "Bubble Sort".
func ParseAlgorithm(name string) (Algorithm, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimSpace(strings.TrimSuffix(n, "sort"))
	n = strings.TrimSuffix(n, "-")
	n = strings.TrimSuffix(n, "_")
	for _, a := range Algorithms() {
		if string(a) == n {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Label returns the human readable menu label (e.g. "Heap Sort").
func (a Algorithm) Label() string {
	if a == "" {
		return ""
	}
	return strings.ToUpper(string(a[:1])) + string(a[1:]) + " Sort"
}
