package runner

import (
	"slices"

	"github.com/khshaikh19/sortviz/pkg/domain"
)

// Highlight is the transient emphasis the latest event puts on a bar.
type Highlight int

const (
	HighlightNone Highlight = iota
	HighlightCompare
	HighlightSwap
)

// View is the renderer's copy of a run: the initial array with every
// delivered event applied. It is owned by a single goroutine.
type View struct {
	Values []int
	Max    int
	Sorted []bool
	Last   domain.StepEvent

	highlights map[int]Highlight
}

// NewView starts a fold over a copy of initial.
func NewView(initial []int) *View {
	v := &View{
		Values:     slices.Clone(initial),
		Sorted:     make([]bool, len(initial)),
		highlights: make(map[int]Highlight, 2),
	}
	for _, x := range initial {
		v.Max = max(v.Max, x)
	}
	return v
}

// Apply folds one event. Highlights from the previous event are cleared.
// Out-of-range indices are ignored.
func (v *View) Apply(ev domain.StepEvent) {
	clear(v.highlights)
	v.Last = ev

	switch ev.Kind {
	case domain.StepCompare:
		v.mark(ev.I, HighlightCompare)
		v.mark(ev.J, HighlightCompare)
	case domain.StepSwap:
		if v.valid(ev.I) && v.valid(ev.J) {
			v.Values[ev.I], v.Values[ev.J] = v.Values[ev.J], v.Values[ev.I]
		}
		v.mark(ev.I, HighlightSwap)
		v.mark(ev.J, HighlightSwap)
	case domain.StepOverwrite:
		if v.valid(ev.I) {
			v.Values[ev.I] = ev.Value
			v.Max = max(v.Max, ev.Value)
		}
		v.mark(ev.I, HighlightSwap)
	case domain.StepMarkSorted:
		if v.valid(ev.I) {
			v.Sorted[ev.I] = true
		}
	case domain.StepMarkAllSorted:
		for i := range v.Sorted {
			v.Sorted[i] = true
		}
	}
}

// HighlightAt reports the emphasis the latest event put on index i.
func (v *View) HighlightAt(i int) Highlight {
	return v.highlights[i]
}

// Len returns the array length.
func (v *View) Len() int { return len(v.Values) }

func (v *View) valid(i int) bool { return i >= 0 && i < len(v.Values) }

func (v *View) mark(i int, h Highlight) {
	if v.valid(i) {
		v.highlights[i] = h
	}
}
