package session

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/workspacebilling/pkg/deletionguard"
)

// Deleter asks the backend to delete a workspace.
type Deleter interface {
	DeleteWorkspace(ctx context.Context, id uuid.UUID) error
}

// DeleterFunc adapts a function to Deleter.
type DeleterFunc func(ctx context.Context, id uuid.UUID) error

func (f DeleterFunc) DeleteWorkspace(ctx context.Context, id uuid.UUID) error {
	return f(ctx, id)
}

type Option func(*Session)

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDeleter sets the backend call made between marking a workspace as
// pending delete and removing it from the store. Without a deleter the
// record is removed right away.
func WithDeleter(d Deleter) Option {
	return func(s *Session) {
		s.deleter = d
	}
}

// WithGuard replaces the default guard, which has no navigator.
func WithGuard(g *deletionguard.Guard) Option {
	return func(s *Session) {
		if g != nil {
			s.guard = g
		}
	}
}
