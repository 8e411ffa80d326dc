package store

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/workspacebilling/pkg/logger"
	"github.com/dmitrymomot/workspacebilling/pkg/policy"
)

// Store is an in-process observable key-value store holding the policy
// collection and the account state of one signed-in session.
//
// Commits are serialized. Subscribers are notified synchronously, in commit
// order, after a commit is fully applied, so no partial state is observable.
// Subscribers must not mutate the store from inside their callback.
type Store struct {
	mu      sync.RWMutex // guards st, version, closed
	st      state
	version uint64
	closed  bool

	notifyMu    sync.Mutex // serializes commit + delivery
	subscribers map[uint64]func(Snapshot)
	nextSubID   uint64
	watchers    map[*watcher]struct{}
	done        chan struct{} // closed by Close
	cleanup     sync.WaitGroup

	persister Persister
	logger    *slog.Logger
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		st:          newState(),
		subscribers: make(map[uint64]func(Snapshot)),
		watchers:    make(map[*watcher]struct{}),
		done:        make(chan struct{}),
		logger:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the latest committed snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.snapshot(s.version)
}

// Update runs fn against a copy of the store and commits the result as one change.
// If fn returns an error nothing is applied and nobody is notified.
// Unchanged results are not committed.
func (s *Store) Update(ctx context.Context, fn func(tx *Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStoreClosed
	}
	tx := &Tx{st: s.st.clone()}
	if err := fn(tx); err != nil {
		s.mu.Unlock()
		return err
	}
	if !tx.changed {
		s.mu.Unlock()
		return nil
	}
	s.st = tx.st
	s.version++
	snap := s.st.snapshot(s.version)
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "store commit",
		logger.Version(snap.Version),
		slog.Int("policies", len(snap.Policies)),
	)

	var persistErr error
	if s.persister != nil {
		if err := s.persister.Save(ctx, snap); err != nil {
			persistErr = errors.Join(ErrPersistFailed, err)
			s.logger.ErrorContext(ctx, "store persist failed",
				logger.Version(snap.Version),
				logger.Error(err),
			)
		}
	}

	s.deliver(snap)
	return persistErr
}

// MergePolicy merges patch into a policy record; a nil patch removes it.
func (s *Store) MergePolicy(ctx context.Context, id uuid.UUID, patch *PolicyPatch) error {
	return s.Update(ctx, func(tx *Tx) error {
		return tx.MergePolicy(id, patch)
	})
}

// SetPolicy creates or replaces a policy record.
func (s *Store) SetPolicy(ctx context.Context, p policy.Policy) error {
	return s.Update(ctx, func(tx *Tx) error {
		return tx.SetPolicy(p)
	})
}

// RemovePolicy removes a policy record.
func (s *Store) RemovePolicy(ctx context.Context, id uuid.UUID) error {
	return s.MergePolicy(ctx, id, nil)
}

// MergeAccount merges patch into the account state.
func (s *Store) MergeAccount(ctx context.Context, patch AccountPatch) error {
	return s.Update(ctx, func(tx *Tx) error {
		tx.MergeAccount(patch)
		return nil
	})
}

// Clear drops every record and the account state, as on sign-out.
func (s *Store) Clear(ctx context.Context) error {
	return s.Update(ctx, func(tx *Tx) error {
		if len(tx.st.order) == 0 && !tx.st.account.IsSignedIn() && tx.st.account.OutstandingBalance == nil {
			return nil
		}
		tx.st = newState()
		tx.changed = true
		return nil
	})
}

// Restore replaces the store content with the persisted snapshot, if any.
// Returns false when the persister holds nothing.
func (s *Store) Restore(ctx context.Context) (bool, error) {
	if s.persister == nil {
		return false, nil
	}

	snap, ok, err := s.persister.Load(ctx)
	if err != nil {
		return false, errors.Join(ErrRestoreFailed, err)
	}
	if !ok {
		return false, nil
	}

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false, ErrStoreClosed
	}
	s.st = stateFromSnapshot(snap)
	s.version = max(s.version+1, snap.Version)
	restored := s.st.snapshot(s.version)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "store restored",
		logger.Version(restored.Version),
		slog.Int("policies", len(restored.Policies)),
	)

	s.deliver(restored)
	return true, nil
}

// Subscribe registers fn for change notifications and immediately calls it
// with the current snapshot. The returned function unsubscribes; it is idempotent.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return func() {}
	}
	s.nextSubID++
	id := s.nextSubID
	s.subscribers[id] = fn
	current := s.st.snapshot(s.version)
	s.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
		})
	}
}

// Close detaches every subscriber and closes all watch channels. It returns
// once every watch cleanup has finished. Mutations after Close return
// ErrStoreClosed. Close is idempotent.
func (s *Store) Close() error {
	s.notifyMu.Lock()
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.notifyMu.Unlock()
		return nil
	}
	s.closed = true
	clear(s.subscribers)
	for w := range s.watchers {
		w.close()
	}
	clear(s.watchers)
	close(s.done)
	s.mu.Unlock()
	s.notifyMu.Unlock()

	s.cleanup.Wait()
	return nil
}

// deliver must be called with notifyMu held.
func (s *Store) deliver(snap Snapshot) {
	s.mu.RLock()
	ids := make([]uint64, 0, len(s.subscribers))
	for id := range s.subscribers {
		ids = append(ids, id)
	}
	watchers := make([]*watcher, 0, len(s.watchers))
	for w := range s.watchers {
		watchers = append(watchers, w)
	}
	s.mu.RUnlock()

	// Subscription order is stable so the composition at the call site is predictable.
	slices.Sort(ids)
	for _, id := range ids {
		s.mu.RLock()
		fn, ok := s.subscribers[id]
		s.mu.RUnlock()
		if ok {
			fn(snap.clone())
		}
	}

	for _, w := range watchers {
		w.offer(snap.clone())
	}
}
