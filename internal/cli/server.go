package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const shutdownTimeout = 5 * time.Second

// statusServer runs the read-only HTTP surface next to a session.
type statusServer struct {
	srv    *http.Server
	addr   string
	cancel context.CancelFunc
	errs   chan error
}

func startStatusServer(addr string, handler http.Handler, logger *slog.Logger) (*statusServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("status server: %w", err)
	}

	// Long-lived SSE requests hang off base so Shutdown does not wait on them.
	base, cancel := context.WithCancel(context.Background())
	s := &statusServer{
		srv: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			BaseContext:       func(net.Listener) context.Context { return base },
		},
		addr:   ln.Addr().String(),
		cancel: cancel,
		errs:   make(chan error, 1),
	}

	go func() {
		defer close(s.errs)
		logger.Info("status server listening", "addr", s.addr)
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.errs <- err
		}
	}()
	return s, nil
}

// Addr is the bound address, useful when listening on port 0.
func (s *statusServer) Addr() string { return s.addr }

// Shutdown stops the server gracefully, forcing it closed after the timeout.
func (s *statusServer) Shutdown(ctx context.Context) error {
	s.cancel()
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		_ = s.srv.Close()
		return fmt.Errorf("could not stop server gracefully: %w", err)
	}
	return <-s.errs
}
