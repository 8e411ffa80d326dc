package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/dmitrymomot/workspacebilling/pkg/logger"
)

// Server runs an http.Server until its context is cancelled, then shuts it
// down gracefully within Config.ShutdownTimeout.
type Server struct {
	cfg         Config
	logger      *slog.Logger
	stopHooks   []func(context.Context)
	listenHooks []func(string)

	mu      sync.Mutex
	running bool
}

func New(cfg Config, opts ...Option) *Server {
	s := &Server{cfg: cfg.merge(), logger: logger.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run blocks until ctx is done or the listener fails. A clean shutdown
// returns nil. Signal handling is left to the caller (signal.NotifyContext).
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	s.running = true
	s.mu.Unlock()

	if handler == nil {
		handler = http.NotFoundHandler()
	}

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return errors.Join(ErrStart, err)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
		// request contexts derive from ctx so SSE streams end on shutdown
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	addr := ln.Addr().String()
	for _, h := range s.listenHooks {
		h(addr)
	}
	s.logger.InfoContext(ctx, "http server listening", slog.String("addr", addr))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Join(ErrStart, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
	defer cancel()

	var shutdownErr error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		shutdownErr = errors.Join(ErrShutdown, err)
		_ = srv.Close()
	}
	<-errCh

	for _, h := range s.stopHooks {
		h(shutdownCtx)
	}
	s.logger.InfoContext(ctx, "http server stopped", logger.Error(shutdownErr))
	return shutdownErr
}
