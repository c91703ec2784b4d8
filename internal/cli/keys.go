package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/khshaikh19/sortviz/pkg/domain"
	"golang.org/x/term"
)

// Controls is the part of the controller the keyboard drives.
type Controls interface {
	State() domain.ExecutionState
	Pause()
	Resume()
	Stop()
}

const (
	keyCtrlC = 0x03
	keyEsc   = 0x1b
)

// HandleKeys reads single-key commands from r until ctx is done, r is
// exhausted or closed, or a stop key arrives. Space and p toggle pause;
// q, Esc and Ctrl-C stop the run.
func HandleKeys(ctx context.Context, r io.Reader, ctl Controls, logger *slog.Logger) error {
	buf := make([]byte, 16)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			if ctx.Err() != nil {
				return nil
			}
			if stop := dispatchKey(b, ctl, logger); stop {
				return nil
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
				return nil
			}
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func dispatchKey(b byte, ctl Controls, logger *slog.Logger) (stop bool) {
	switch b {
	case ' ', 'p', 'P':
		switch ctl.State() {
		case domain.StateRunning:
			logger.Debug("key: pause")
			ctl.Pause()
		case domain.StatePaused:
			logger.Debug("key: resume")
			ctl.Resume()
		}
	case 'q', 'Q', keyEsc, keyCtrlC:
		logger.Debug("key: stop")
		ctl.Stop()
		return true
	}
	return false
}

// openKeyboard opens the controlling terminal for key reads. The file goes
// through the runtime poller, so closing it interrupts a pending Read and the
// key reader ends with the run. Where there is no /dev/tty it falls back to
// stdin, whose blocking Read only returns on the next key.
func openKeyboard(stdin *os.File) (r io.Reader, closeFn func() error, closable bool) {
	tty, err := os.Open("/dev/tty")
	if err != nil {
		return stdin, func() error { return nil }, false
	}
	return tty, tty.Close, true
}

// rawTerminal switches f to raw mode when it is a terminal, so single keys
// arrive without Enter. restore is never nil.
func rawTerminal(f *os.File) (restore func(), ok bool) {
	if f == nil {
		return func() {}, false
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return func() {}, false
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		return func() {}, false
	}
	return func() { _ = term.Restore(fd, old) }, true
}

// crlfWriter restores line starts while the terminal is raw, where a bare
// newline no longer returns the carriage.
type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(p []byte) (int, error) {
	if bytes.IndexByte(p, '\n') < 0 {
		return c.w.Write(p)
	}
	out := bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))
	if _, err := c.w.Write(out); err != nil {
		return 0, err
	}
	return len(p), nil
}

// terminalRows sizes the bar chart to the terminal, leaving room for the
// status line and summary header.
func terminalRows(f *os.File, fallback int) int {
	if f == nil {
		return fallback
	}
	_, height, err := term.GetSize(int(f.Fd()))
	if err != nil || height <= 0 {
		return fallback
	}
	return max(4, min(height-4, 32))
}
