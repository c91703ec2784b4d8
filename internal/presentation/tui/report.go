package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/khshaikh19/sortviz/pkg/domain"
)

type algorithmInfo struct {
	best, average, worst, space string
	stable                      bool
}

var catalogue = map[domain.Algorithm]algorithmInfo{
	domain.AlgorithmBubble:    {best: "O(n)", average: "O(n²)", worst: "O(n²)", space: "O(1)", stable: true},
	domain.AlgorithmSelection: {best: "O(n²)", average: "O(n²)", worst: "O(n²)", space: "O(1)"},
	domain.AlgorithmInsertion: {best: "O(n)", average: "O(n²)", worst: "O(n²)", space: "O(1)", stable: true},
	domain.AlgorithmMerge:     {best: "O(n log n)", average: "O(n log n)", worst: "O(n log n)", space: "O(n)", stable: true},
	domain.AlgorithmQuick:     {best: "O(n log n)", average: "O(n log n)", worst: "O(n²)", space: "O(log n)"},
	domain.AlgorithmHeap:      {best: "O(n log n)", average: "O(n log n)", worst: "O(n log n)", space: "O(1)"},
}

// AlgorithmTable renders the supported algorithms as a markdown table.
func AlgorithmTable() string {
	var sb strings.Builder
	sb.WriteString("# Algorithms\n\n")
	sb.WriteString("| Name | Label | Best | Average | Worst | Space | Stable |\n")
	sb.WriteString("|------|-------|------|---------|-------|-------|--------|\n")
	for _, a := range domain.Algorithms() {
		info := catalogue[a]
		stable := "no"
		if info.stable {
			stable = "yes"
		}
		fmt.Fprintf(&sb, "| `%s` | %s | %s | %s | %s | %s | %s |\n",
			a, a.Label(), info.best, info.average, info.worst, info.space, stable)
	}
	return sb.String()
}

// Summary renders a finished run as markdown.
func Summary(res domain.Result, length int, counts map[domain.StepKind]int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s: %s\n\n", res.Algorithm.Label(), res.Outcome)
	fmt.Fprintf(&sb, "- **Run**: `%s`\n", res.RunID)
	fmt.Fprintf(&sb, "- **Length**: %d\n", length)
	fmt.Fprintf(&sb, "- **Events**: %d\n", res.Events)
	fmt.Fprintf(&sb, "- **Duration**: %s\n", res.Duration.Round(time.Millisecond))
	if res.Err != nil {
		fmt.Fprintf(&sb, "- **Error**: %v\n", res.Err)
	}
	if len(counts) > 0 {
		sb.WriteString("\n| Step | Count |\n|------|-------|\n")
		for _, k := range []domain.StepKind{
			domain.StepCompare,
			domain.StepSwap,
			domain.StepOverwrite,
			domain.StepMarkSorted,
			domain.StepMarkAllSorted,
		} {
			if n := counts[k]; n > 0 {
				fmt.Fprintf(&sb, "| %s | %d |\n", k, n)
			}
		}
	}
	return sb.String()
}
