package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/khshaikh19/sortviz"
	"github.com/khshaikh19/sortviz/internal/logging"
	"github.com/khshaikh19/sortviz/internal/presentation/tui"
	httpAdapter "github.com/khshaikh19/sortviz/pkg/adapters/http"
	"github.com/khshaikh19/sortviz/pkg/domain"
	"github.com/khshaikh19/sortviz/pkg/observability"
	"github.com/khshaikh19/sortviz/pkg/runner"
	"github.com/muesli/termenv"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/term"
)

// DefaultLockKey names the run lock shared by every sortviz process.
const DefaultLockKey = "array"

// RunSession executes a single run end to end: it builds the controller and
// its plumbing from opts, renders the run on stdout and prints a summary.
// A run cancelled by a signal or a key is not an error.
func RunSession(ctx context.Context, opts RunOptions, stdin *os.File, stdout io.Writer) error {
	cfg, err := LoadConfig(opts.ConfigPath, opts.Overrides)
	if err != nil {
		return err
	}
	logger := createLogger(opts.LogLevel, opts.LogJSON)

	req, err := resolveRequest(cfg, opts)
	if err != nil {
		return err
	}

	outFile, _ := stdout.(*os.File)
	tty := !opts.JSON && isTerminal(outFile)

	if !opts.JSON && !opts.Quiet {
		tui.PrintBanner(stdout)
	}

	sm := runner.NewSignalManager(ctx)
	defer sm.Stop()
	ctx = sm.Context()

	locker, closeLocker, err := setupLocker(ctx, opts.RedisAddr, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeLocker() }()

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)
	hooks := []domain.LifecycleHooks{metrics.Hooks()}
	if logging.ParseLevel(opts.LogLevel) == slog.LevelDebug {
		hooks = append(hooks, observability.LogHooks(logger))
	}

	var ctrl *sortviz.Controller
	var api *httpAdapter.Server
	if opts.MetricsAddr != "" {
		api = httpAdapter.NewServer(
			statusFunc(func() sortviz.Status { return ctrl.Status() }),
			httpAdapter.WithGatherer(registry),
			httpAdapter.WithLogger(logger),
		)
		hooks = append(hooks, api.Hooks())
	}

	lockKey := opts.LockKey
	if lockKey == "" {
		lockKey = DefaultLockKey
	}
	ctrl = sortviz.New(
		sortviz.WithConfig(cfg),
		sortviz.WithLogger(logger),
		sortviz.WithLifecycleHooks(observability.Combine(hooks...)),
		sortviz.WithLocker(locker, lockKey),
	)

	if api != nil {
		srv, err := startStatusServer(opts.MetricsAddr, api.Handler(), logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := srv.Shutdown(context.WithoutCancel(ctx)); err != nil {
				logger.Warn("status server shutdown failed", "error", err)
			}
		}()
	}

	handle, err := ctrl.Start(ctx, req.algorithm, req.values, req.speed)
	if err != nil {
		return fmt.Errorf("could not start run: %w", err)
	}

	out := stdout
	restore := func() {}
	if opts.Interactive && tty {
		if undo, ok := rawTerminal(stdin); ok {
			out = crlfWriter{w: stdout}
			stopKeys := startKeys(ctx, stdin, handle, logger)
			restore = func() {
				stopKeys()
				undo()
			}
		}
	}
	defer func() { restore() }()

	counter := newStepCounter()
	r := runner.NewRunner(
		runner.WithLogger(logger),
		runner.WithHandler(runner.MultiHandler(newViewHandler(opts, cfg.FrameInterval, out, outFile, tty), counter)),
	)
	res, runErr := r.Run(ctx, handle)

	restore()
	restore = func() {}

	if !opts.JSON && !opts.Quiet {
		render := tui.PlainRenderer
		if tty {
			render = tui.NewRenderer(terminalWidth(outFile))
		}
		md, err := render(tui.Summary(res, len(req.values), counter.counts))
		if err != nil {
			logger.Warn("summary render failed", "error", err)
		} else {
			fmt.Fprint(stdout, md)
		}
	}
	return runErr
}

// keyStopTimeout bounds how long the session waits for the key reader to exit.
const keyStopTimeout = 100 * time.Millisecond

// startKeys drives ctl from the keyboard until the returned stop is called.
func startKeys(ctx context.Context, stdin *os.File, ctl Controls, logger *slog.Logger) (stop func()) {
	keys, closeKeys, closable := openKeyboard(stdin)
	keyCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := HandleKeys(keyCtx, keys, ctl, logger); err != nil {
			logger.Debug("key reader stopped", "error", err)
		}
	}()
	return func() {
		cancel()
		if err := closeKeys(); err != nil {
			logger.Debug("could not close keyboard", "error", err)
		}
		if !closable {
			// A blocking stdin read ends on the next key, which is dropped.
			return
		}
		select {
		case <-done:
		case <-time.After(keyStopTimeout):
			logger.Debug("key reader still blocked after close")
		}
	}
}

func newViewHandler(opts RunOptions, frameInterval time.Duration, out io.Writer, outFile *os.File, tty bool) runner.Handler {
	if opts.JSON {
		return runner.NewJSONHandler(out)
	}
	textOpts := []runner.TextHandlerOption{
		runner.WithTextHandlerRedraw(tty),
		runner.WithTextHandlerFrameInterval(frameInterval),
	}
	if tty {
		textOpts = append(textOpts,
			runner.WithTextHandlerProfile(termenv.NewOutput(outFile).EnvColorProfile()),
			runner.WithTextHandlerRows(terminalRows(outFile, 16)),
		)
	} else {
		textOpts = append(textOpts, runner.WithTextHandlerProfile(termenv.Ascii))
	}
	return runner.NewTextHandler(out, textOpts...)
}

type statusFunc func() sortviz.Status

func (f statusFunc) Status() sortviz.Status { return f() }

// stepCounter tallies events by kind for the run summary.
type stepCounter struct {
	counts map[domain.StepKind]int
}

func newStepCounter() *stepCounter {
	return &stepCounter{counts: make(map[domain.StepKind]int)}
}

func (c *stepCounter) Begin(context.Context, runner.RunInfo, *runner.View) error { return nil }

func (c *stepCounter) Step(_ context.Context, _ *runner.View, ev domain.StepEvent) error {
	c.counts[ev.Kind]++
	return nil
}

func (c *stepCounter) End(context.Context, *runner.View, domain.Result) error { return nil }

func isTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

func terminalWidth(f *os.File) int {
	if f == nil {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
