package runner

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/khshaikh19/sortviz/pkg/domain"
)

// Record types written by JSONHandler.
const (
	RecordStart = "start"
	RecordStep  = "step"
	RecordEnd   = "end"
)

// Record is one line of JSONHandler output.
type Record struct {
	Type   string            `json:"type"`
	Run    *RunInfo          `json:"run,omitempty"`
	Event  *domain.StepEvent `json:"event,omitempty"`
	Result *domain.Result    `json:"result,omitempty"`
	Final  []int             `json:"final,omitempty"`
}

// JSONHandler implements Handler for structured JSON-Lines output:
// one start record, one record per event, one end record.
type JSONHandler struct {
	Writer  io.Writer
	Encoder *json.Encoder
}

// NewJSONHandler creates a handler writing to w.
func NewJSONHandler(w io.Writer) *JSONHandler {
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Writer:  w,
		Encoder: json.NewEncoder(w),
	}
}

func (h *JSONHandler) Begin(ctx context.Context, info RunInfo, view *View) error {
	return h.Encoder.Encode(Record{Type: RecordStart, Run: &info})
}

func (h *JSONHandler) Step(ctx context.Context, view *View, ev domain.StepEvent) error {
	return h.Encoder.Encode(Record{Type: RecordStep, Event: &ev})
}

func (h *JSONHandler) End(ctx context.Context, view *View, res domain.Result) error {
	return h.Encoder.Encode(Record{Type: RecordEnd, Result: &res, Final: view.Values})
}
