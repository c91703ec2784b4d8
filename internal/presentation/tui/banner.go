package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the sortviz banner, one bar colour per line.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text, color string
	}{
		{"                  _           _     ", "#4a90e2"},
		{"  ___  ___  _ __ | |___   __ (_)____", "#4a90e2"},
		{" / __|/ _ \\| '__|| __\\ \\ / / | |_  /", "#f5a623"},
		{" \\__ \\ (_) | |   | |_ \\ V /  | |/ / ", "#d0021b"},
		{" |___/\\___/|_|    \\__| \\_/   |_/___|", "#7ed321"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
