package domain

import (
	"context"
	"fmt"
	"time"
)

// StepKind defines the category of a StepEvent.
type StepKind string

const (
	StepCompare       StepKind = "compare"
	StepSwap          StepKind = "swap"
	StepOverwrite     StepKind = "overwrite"
	StepMarkSorted    StepKind = "mark_sorted"
	StepMarkAllSorted StepKind = "mark_all_sorted"
)

// Mutates reports whether events of this kind change the array.
func (k StepKind) Mutates() bool {
	return k == StepSwap || k == StepOverwrite
}

// StepEvent is one atomic operation performed by a running algorithm.
// Indices always lie in [0, length) of the run's array.
type StepEvent struct {
	// Seq is the 1-based position of the event in its run's stream.
	Seq   uint64   `json:"seq"`
	Kind  StepKind `json:"kind"`
	I     int      `json:"i"`
	J     int      `json:"j,omitempty"`
	Value int      `json:"value,omitempty"`
}

// Compare builds a compare event between i and j.
func Compare(i, j int) StepEvent { return StepEvent{Kind: StepCompare, I: i, J: j} }

// Swap builds a swap event between i and j.
func Swap(i, j int) StepEvent { return StepEvent{Kind: StepSwap, I: i, J: j} }

// Overwrite builds an event assigning value at i.
func Overwrite(i, value int) StepEvent { return StepEvent{Kind: StepOverwrite, I: i, Value: value} }

// MarkSorted builds an event finalising index i.
func MarkSorted(i int) StepEvent { return StepEvent{Kind: StepMarkSorted, I: i} }

// MarkAllSorted builds the terminal sweep event.
func MarkAllSorted() StepEvent { return StepEvent{Kind: StepMarkAllSorted} }

// Op returns the event without its sequence number, for comparing streams by content.
func (e StepEvent) Op() StepEvent {
	e.Seq = 0
	return e
}

func (e StepEvent) String() string {
	switch e.Kind {
	case StepCompare:
		return fmt.Sprintf("Compare(%d,%d)", e.I, e.J)
	case StepSwap:
		return fmt.Sprintf("Swap(%d,%d)", e.I, e.J)
	case StepOverwrite:
		return fmt.Sprintf("Overwrite(%d,%d)", e.I, e.Value)
	case StepMarkSorted:
		return fmt.Sprintf("MarkSorted(%d)", e.I)
	case StepMarkAllSorted:
		return "MarkAllSorted()"
	default:
		return fmt.Sprintf("Unknown(%s)", e.Kind)
	}
}

// RunEvent describes the start or end of a run.
type RunEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	RunID     string        `json:"run_id"`
	Algorithm Algorithm     `json:"algorithm"`
	Length    int           `json:"length"`
	Delay     time.Duration `json:"delay"`

	// Result is only set when the run has finished.
	Result *Result `json:"result,omitempty"`
}

// StateEvent describes a controller state transition.
type StateEvent struct {
	Timestamp time.Time      `json:"timestamp"`
	RunID     string         `json:"run_id,omitempty"`
	From      ExecutionState `json:"from"`
	To        ExecutionState `json:"to"`
}

// LifecycleHooks defines callbacks for engine observability.
// OnStep runs on the algorithm goroutine and must not block.
type LifecycleHooks struct {
	OnRunStart    func(context.Context, *RunEvent)
	OnRunFinish   func(context.Context, *RunEvent)
	OnStateChange func(context.Context, *StateEvent)
	OnStep        func(context.Context, Algorithm, StepEvent)
}
