package httpserver

import (
	"context"
	"log/slog"
)

// Option configures the HTTP server.
type Option func(*Server)

// WithLogger sets the logger. A discard logger is used by default.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStopHook registers a callback run after the server has shut down,
// typically to close the store and redis client.
func WithStopHook(h func(context.Context)) Option {
	return func(s *Server) {
		if h != nil {
			s.stopHooks = append(s.stopHooks, h)
		}
	}
}

// WithListenHook registers a callback run with the bound address once the
// listener is open. Useful when Addr uses port 0.
func WithListenHook(h func(addr string)) Option {
	return func(s *Server) {
		if h != nil {
			s.listenHooks = append(s.listenHooks, h)
		}
	}
}
