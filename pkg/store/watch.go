package store

import (
	"context"
	"sync"
)

// watcher holds at most one pending snapshot. A newer snapshot replaces a
// stale one that was not received yet, so a slow reader always ends on the
// latest state and never blocks a commit.
type watcher struct {
	ch     chan Snapshot
	closed bool
	mu     sync.Mutex
}

func newWatcher() *watcher {
	return &watcher{ch: make(chan Snapshot, 1)}
}

func (w *watcher) offer(snap Snapshot) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	select {
	case <-w.ch:
	default:
	}
	w.ch <- snap
}

func (w *watcher) close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.closed {
		close(w.ch)
		w.closed = true
	}
}

// Watch returns a channel that yields the current snapshot followed by the
// latest snapshot after each commit. Intermediate snapshots may be skipped
// when the reader is slow. The channel is closed when ctx is done or the
// store is closed.
func (s *Store) Watch(ctx context.Context) <-chan Snapshot {
	w := newWatcher()

	s.notifyMu.Lock()
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.notifyMu.Unlock()
		w.close()
		return w.ch
	}
	s.watchers[w] = struct{}{}
	current := s.st.snapshot(s.version)
	if ctx.Done() != nil {
		s.cleanup.Add(1)
		go s.unwatch(ctx, w)
	}
	s.mu.Unlock()
	w.offer(current)
	s.notifyMu.Unlock()

	return w.ch
}

// unwatch drops w when ctx ends. After Close the watcher is already closed.
func (s *Store) unwatch(ctx context.Context, w *watcher) {
	defer s.cleanup.Done()

	select {
	case <-ctx.Done():
	case <-s.done:
		return
	}

	s.mu.Lock()
	delete(s.watchers, w)
	s.mu.Unlock()
	w.close()
}
