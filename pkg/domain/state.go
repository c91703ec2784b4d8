package domain

import "time"

// ExecutionState is the controller state machine:
//
//	Idle -Start-> Running -Pause-> Paused -Resume-> Running
//	Running|Paused -Stop-> Stopping -> Stopped -Start-> Running
type ExecutionState int32

const (
	StateIdle ExecutionState = iota
	StateRunning
	StatePaused
	StateStopping
	StateStopped
)

func (s ExecutionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Active reports whether a run owns the array in this state.
func (s ExecutionState) Active() bool {
	return s == StateRunning || s == StatePaused
}

// MarshalText renders the state by name in JSON payloads.
func (s ExecutionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Outcome is how a run terminated.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeFailed    Outcome = "failed"
)

// Result summarises a finished run.
type Result struct {
	RunID     string        `json:"run_id"`
	Algorithm Algorithm     `json:"algorithm"`
	Outcome   Outcome       `json:"outcome"`
	Events    uint64        `json:"events"`
	Duration  time.Duration `json:"duration"`

	// Err is set only for OutcomeFailed.
	Err error `json:"-"`
}

// States lists every execution state in lifecycle order.
func States() []ExecutionState {
	return []ExecutionState{StateIdle, StateRunning, StatePaused, StateStopping, StateStopped}
}

// Transition is one edge of the execution state machine.
type Transition struct {
	From    ExecutionState
	Trigger string
	To      ExecutionState
}

// Transitions lists every legal state change. "finish" is a run exiting on
// its own (completed or failed); "exit" is a stopped run unwinding.
func Transitions() []Transition {
	return []Transition{
		{From: StateIdle, Trigger: "start", To: StateRunning},
		{From: StateRunning, Trigger: "pause", To: StatePaused},
		{From: StatePaused, Trigger: "resume", To: StateRunning},
		{From: StateRunning, Trigger: "stop", To: StateStopping},
		{From: StatePaused, Trigger: "stop", To: StateStopping},
		{From: StateRunning, Trigger: "finish", To: StateStopped},
		{From: StatePaused, Trigger: "finish", To: StateStopped},
		{From: StateStopping, Trigger: "exit", To: StateStopped},
		{From: StateStopped, Trigger: "start", To: StateRunning},
	}
}

// CanTransition reports whether from -> to is a legal edge.
func CanTransition(from, to ExecutionState) bool {
	for _, t := range Transitions() {
		if t.From == from && t.To == to {
			return true
		}
	}
	return false
}
