package store

import (
	"log/slog"
)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence failures and commit tracing.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPersister saves every committed snapshot through p.
func WithPersister(p Persister) Option {
	return func(s *Store) {
		if p != nil {
			s.persister = p
		}
	}
}
