package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/khshaikh19/sortviz/pkg/domain"
	"github.com/muesli/termenv"
)

// Bar colours.
const (
	ColorBar     = "#4a90e2"
	ColorCompare = "#f5a623"
	ColorSwap    = "#d0021b"
	ColorSorted  = "#7ed321"
)

const (
	defaultRows          = 16
	defaultFrameInterval = 16 * time.Millisecond
	barGlyph             = "█"
)

// TextHandler draws the array as vertical coloured bars on a terminal.
type TextHandler struct {
	Writer io.Writer

	out       *termenv.Output
	rows      int
	interval  time.Duration
	redraw    bool
	lastFrame time.Time
	info      RunInfo
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerProfile forces a colour profile (termenv.Ascii disables colour).
func WithTextHandlerProfile(p termenv.Profile) TextHandlerOption {
	return func(h *TextHandler) {
		h.out = termenv.NewOutput(h.Writer, termenv.WithProfile(p))
	}
}

// WithTextHandlerRows sets the bar height in terminal rows.
func WithTextHandlerRows(rows int) TextHandlerOption {
	return func(h *TextHandler) {
		if rows > 0 {
			h.rows = rows
		}
	}
}

// WithTextHandlerFrameInterval throttles redraws. Zero draws every event.
func WithTextHandlerFrameInterval(d time.Duration) TextHandlerOption {
	return func(h *TextHandler) {
		h.interval = max(d, 0)
	}
}

// WithTextHandlerRedraw controls whether each frame clears the screen first.
func WithTextHandlerRedraw(redraw bool) TextHandlerOption {
	return func(h *TextHandler) {
		h.redraw = redraw
	}
}

// NewTextHandler creates a handler drawing on w. The colour profile is
// detected from w unless overridden.
func NewTextHandler(w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Writer:   w,
		out:      termenv.NewOutput(w),
		rows:     defaultRows,
		interval: defaultFrameInterval,
		redraw:   true,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) Begin(ctx context.Context, info RunInfo, view *View) error {
	h.info = info
	if h.redraw {
		h.out.HideCursor()
	}
	return h.frame(view)
}

func (h *TextHandler) Step(ctx context.Context, view *View, ev domain.StepEvent) error {
	if h.interval > 0 && ev.Kind != domain.StepMarkAllSorted && time.Since(h.lastFrame) < h.interval {
		return nil
	}
	return h.frame(view)
}

func (h *TextHandler) End(ctx context.Context, view *View, res domain.Result) error {
	if err := h.frame(view); err != nil {
		return err
	}
	if h.redraw {
		h.out.ShowCursor()
	}
	_, err := fmt.Fprintf(h.Writer, "%s: %s after %d events in %s\n",
		h.info.Algorithm.Label(), res.Outcome, res.Events, res.Duration.Round(time.Millisecond))
	return err
}

func (h *TextHandler) frame(view *View) error {
	h.lastFrame = time.Now()
	if h.redraw {
		h.out.MoveCursor(1, 1)
		h.out.ClearScreen()
	}

	w := bufio.NewWriter(h.Writer)
	heights := make([]int, view.Len())
	for i, v := range view.Values {
		heights[i] = barHeight(v, view.Max, h.rows)
	}
	for row := h.rows; row >= 1; row-- {
		for i, height := range heights {
			if height < row {
				w.WriteByte(' ')
				continue
			}
			w.WriteString(h.out.String(barGlyph).Foreground(h.out.Color(barColor(view, i))).String())
		}
		w.WriteByte('\n')
	}
	fmt.Fprintf(w, "%s  #%d  %s\n", h.info.Algorithm.Label(), view.Last.Seq, lastLabel(view))
	return w.Flush()
}

// barHeight scales v into [1, rows] so every positive value stays visible.
func barHeight(v, maxValue, rows int) int {
	if v <= 0 || maxValue <= 0 {
		return 0
	}
	return max(1, (v*rows+maxValue-1)/maxValue)
}

func barColor(view *View, i int) string {
	switch view.HighlightAt(i) {
	case HighlightCompare:
		return ColorCompare
	case HighlightSwap:
		return ColorSwap
	}
	if view.Sorted[i] {
		return ColorSorted
	}
	return ColorBar
}

func lastLabel(view *View) string {
	if view.Last.Kind == "" {
		return "ready"
	}
	return view.Last.String()
}
