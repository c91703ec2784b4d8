package graph

import (
	"fmt"
	"strings"

	"github.com/khshaikh19/sortviz/pkg/domain"
)

// Overlay contains dynamic state data to visualize on the diagram.
type Overlay struct {
	Current domain.ExecutionState
}

// StateDiagram produces a Mermaid stateDiagram-v2 of the controller's
// execution state machine. Idle is the entry point. If overlay is given,
// the current state is highlighted.
func StateDiagram(overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")
	sb.WriteString(fmt.Sprintf("    [*] --> %s\n", stateID(domain.StateIdle)))

	for _, t := range domain.Transitions() {
		sb.WriteString(fmt.Sprintf("    %s --> %s: %s\n", stateID(t.From), stateID(t.To), t.Trigger))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString(fmt.Sprintf("    class %s current\n", stateID(overlay.Current)))
	}

	return sb.String()
}

func stateID(s domain.ExecutionState) string {
	name := s.String()
	return strings.ToUpper(name[:1]) + name[1:]
}
