package sortviz

import (
	"time"

	"github.com/khshaikh19/sortviz/pkg/domain"
)

// Version is the engine release, overridden at link time by the release build.
var Version = "dev"

// Status is a point-in-time summary of the controller, safe to serialise.
type Status struct {
	State     domain.ExecutionState `json:"state"`
	RunID     string                `json:"run_id,omitempty"`
	Algorithm domain.Algorithm      `json:"algorithm,omitempty"`
	Length    int                   `json:"length,omitempty"`
	Delay     time.Duration         `json:"delay,omitempty"`
	Events    uint64                `json:"events"`
}

// Status reports the controller state and, if any, the current run.
func (c *Controller) Status() Status {
	c.mu.Lock()
	st := Status{State: c.state}
	h := c.current
	c.mu.Unlock()

	if h != nil {
		st.RunID = h.ID()
		st.Algorithm = h.Algorithm()
		st.Length = h.Array().Len()
		st.Delay = h.Delay()
		st.Events = h.Emitted()
	}
	return st
}
