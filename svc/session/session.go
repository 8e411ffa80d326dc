package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/workspacebilling/pkg/deletionguard"
	"github.com/dmitrymomot/workspacebilling/pkg/logger"
	"github.com/dmitrymomot/workspacebilling/pkg/policy"
	"github.com/dmitrymomot/workspacebilling/pkg/store"
)

// Session binds the subscription view and the deletion guard to a store.
// Every committed snapshot recomputes the view and the guard inputs before
// the store moves on to the next commit.
type Session struct {
	store   *store.Store
	guard   *deletionguard.Guard
	deleter Deleter
	logger  *slog.Logger

	mu          sync.RWMutex
	view        View
	unsubscribe func()
}

// New subscribes to st. The current snapshot is applied before New returns.
func New(st *store.Store, opts ...Option) *Session {
	s := &Session{
		store:  st,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.guard == nil {
		s.guard = deletionguard.New(nil, deletionguard.WithLogger(s.logger))
	}
	s.logger = s.logger.With(logger.Component("session"))
	s.unsubscribe = st.Subscribe(s.apply)
	return s
}

func (s *Session) apply(snap store.Snapshot) {
	view := ViewFromSnapshot(snap)

	s.mu.Lock()
	prev := s.view
	s.view = view
	s.mu.Unlock()

	s.guard.Update(view.GuardInputs())

	if prev.SubscriptionPlan != view.SubscriptionPlan || prev.ShouldShowSubscription != view.ShouldShowSubscription {
		s.logger.Debug("subscription visibility changed",
			logger.Version(view.Version),
			logger.AccountID(snap.Account.ID),
			logger.Plan(view.SubscriptionPlan),
			slog.Bool("should_show", view.ShouldShowSubscription),
		)
	}
}

// View returns the view derived from the latest snapshot.
func (s *Session) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// Guard exposes the deletion guard for rendering the prompt.
func (s *Session) Guard() *deletionguard.Guard {
	return s.guard
}

// Store returns the underlying store.
func (s *Session) Store() *store.Store {
	return s.store
}

// DeleteWorkspace deletes an owned workspace unless the guard blocks it.
// Only paid workspaces go through the guard; personal ones never carry the balance.
// When blocked is true nothing was deleted and the prompt is open.
func (s *Session) DeleteWorkspace(ctx context.Context, id uuid.UUID) (blocked bool, err error) {
	snap := s.store.Snapshot()
	if !snap.Account.IsSignedIn() {
		return false, ErrSignedOut
	}

	p, ok := snap.Policy(id)
	if !ok {
		return false, ErrWorkspaceNotFound
	}
	if !p.IsOwnedBy(snap.Account.ID) {
		return false, ErrNotOwner
	}
	if p.IsPendingDelete() {
		return false, ErrDeletionPending
	}

	log := s.logger.With(logger.PolicyID(id), logger.AccountID(snap.Account.ID))

	if p.IsPaid() && s.guard.RequestDeletion(ctx) {
		log.InfoContext(ctx, "workspace deletion blocked")
		return true, nil
	}

	if s.deleter == nil {
		if err := s.store.RemovePolicy(ctx, id); err != nil {
			return false, err
		}
		log.InfoContext(ctx, "workspace deleted")
		return false, nil
	}

	pending := policy.PendingActionDelete
	if err := s.store.MergePolicy(ctx, id, &store.PolicyPatch{PendingAction: &pending}); err != nil {
		return false, err
	}

	if err := s.deleter.DeleteWorkspace(ctx, id); err != nil {
		none := policy.PendingActionNone
		rollbackErr := s.store.MergePolicy(context.WithoutCancel(ctx), id, &store.PolicyPatch{PendingAction: &none})
		log.ErrorContext(ctx, "workspace deletion failed", logger.Errors(err, rollbackErr))
		return false, errors.Join(ErrDeleteFailed, err, rollbackErr)
	}

	if err := s.store.RemovePolicy(ctx, id); err != nil {
		return false, err
	}
	log.InfoContext(ctx, "workspace deleted")
	return false, nil
}

// Close stops receiving snapshots. The store is not closed.
func (s *Session) Close() {
	s.unsubscribe()
}
