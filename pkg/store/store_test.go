package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/workspacebilling/pkg/account"
	"github.com/dmitrymomot/workspacebilling/pkg/policy"
	"github.com/dmitrymomot/workspacebilling/pkg/store"
)

func typePtr(t policy.Type) *policy.Type { return &t }

func ids(snap store.Snapshot) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(snap.Policies))
	for _, p := range snap.Policies {
		out = append(out, p.ID)
	}
	return out
}

type recorder struct {
	mu    sync.Mutex
	snaps []store.Snapshot
}

func (r *recorder) record(s store.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, s)
}

func (r *recorder) all() []store.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]store.Snapshot(nil), r.snaps...)
}

func TestStore_MergePolicy(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("creates record with type", func(t *testing.T) {
		t.Parallel()
		s := store.New()
		id := uuid.New()
		owner := uuid.New()

		err := s.MergePolicy(ctx, id, &store.PolicyPatch{Type: typePtr(policy.TypeTeam), OwnerAccountID: &owner})
		require.NoError(t, err)

		got, ok := s.Snapshot().Policy(id)
		require.True(t, ok)
		assert.Equal(t, policy.TypeTeam, got.Type)
		assert.Equal(t, owner, got.OwnerAccountID)
	})

	t.Run("new record without type is rejected", func(t *testing.T) {
		t.Parallel()
		s := store.New()
		name := "Acme"

		err := s.MergePolicy(ctx, uuid.New(), &store.PolicyPatch{Name: &name})
		require.ErrorIs(t, err, store.ErrPolicyTypeRequired)
		assert.Empty(t, s.Snapshot().Policies)
	})

	t.Run("nil id is rejected", func(t *testing.T) {
		t.Parallel()
		s := store.New()
		err := s.MergePolicy(ctx, uuid.Nil, &store.PolicyPatch{Type: typePtr(policy.TypeTeam)})
		require.ErrorIs(t, err, store.ErrNilPolicyID)
	})

	t.Run("partial merge keeps other fields", func(t *testing.T) {
		t.Parallel()
		s := store.New()
		p := policy.Policy{ID: uuid.New(), Name: "Acme", Type: policy.TypeTeam, OwnerAccountID: uuid.New()}
		require.NoError(t, s.SetPolicy(ctx, p))

		require.NoError(t, s.MergePolicy(ctx, p.ID, &store.PolicyPatch{Type: typePtr(policy.TypeCorporate)}))

		got, ok := s.Snapshot().Policy(p.ID)
		require.True(t, ok)
		assert.Equal(t, "Acme", got.Name)
		assert.Equal(t, policy.TypeCorporate, got.Type)
		assert.Equal(t, p.OwnerAccountID, got.OwnerAccountID)
	})

	t.Run("nil patch removes and re-added record goes last", func(t *testing.T) {
		t.Parallel()
		s := store.New()
		a := policy.Policy{ID: uuid.New(), Type: policy.TypeTeam}
		b := policy.Policy{ID: uuid.New(), Type: policy.TypeCorporate}
		c := policy.Policy{ID: uuid.New(), Type: policy.TypePersonal}
		for _, p := range []policy.Policy{a, b, c} {
			require.NoError(t, s.SetPolicy(ctx, p))
		}
		assert.Equal(t, []uuid.UUID{a.ID, b.ID, c.ID}, ids(s.Snapshot()))

		require.NoError(t, s.MergePolicy(ctx, a.ID, nil))
		assert.Equal(t, []uuid.UUID{b.ID, c.ID}, ids(s.Snapshot()))

		require.NoError(t, s.SetPolicy(ctx, a))
		assert.Equal(t, []uuid.UUID{b.ID, c.ID, a.ID}, ids(s.Snapshot()))
	})

	t.Run("removing a missing record is a no-op", func(t *testing.T) {
		t.Parallel()
		s := store.New()
		before := s.Snapshot().Version
		require.NoError(t, s.RemovePolicy(ctx, uuid.New()))
		assert.Equal(t, before, s.Snapshot().Version)
	})
}

func TestStore_MergeAccount(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := store.New()
	id := uuid.New()

	require.NoError(t, s.MergeAccount(ctx, store.AccountPatch{ID: &id}))
	snap := s.Snapshot()
	assert.Equal(t, id, snap.Account.ID)
	assert.Nil(t, snap.Account.OutstandingBalance)
	assert.Equal(t, int64(0), snap.Balance())

	require.NoError(t, s.MergeAccount(ctx, store.AccountPatch{OutstandingBalance: account.Amount(100)}))
	snap = s.Snapshot()
	assert.Equal(t, id, snap.Account.ID, "merge keeps the id")
	assert.Equal(t, int64(100), snap.Balance())

	require.NoError(t, s.MergeAccount(ctx, store.AccountPatch{ClearBalance: true}))
	assert.Nil(t, s.Snapshot().Account.OutstandingBalance)
}

func TestStore_SnapshotIsIsolated(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := store.New()
	p := policy.Policy{ID: uuid.New(), Name: "Acme", Type: policy.TypeTeam}
	require.NoError(t, s.SetPolicy(ctx, p))
	require.NoError(t, s.MergeAccount(ctx, store.AccountPatch{OutstandingBalance: account.Amount(5)}))

	snap := s.Snapshot()
	snap.Policies[0].Name = "mutated"
	*snap.Account.OutstandingBalance = 999

	fresh := s.Snapshot()
	assert.Equal(t, "Acme", fresh.Policies[0].Name)
	assert.Equal(t, int64(5), fresh.Balance())
}

func TestStore_Subscribe(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("delivers current snapshot then every commit in order", func(t *testing.T) {
		t.Parallel()
		s := store.New()
		rec := &recorder{}
		unsubscribe := s.Subscribe(rec.record)
		defer unsubscribe()

		require.NoError(t, s.SetPolicy(ctx, policy.Policy{ID: uuid.New(), Type: policy.TypeTeam}))
		require.NoError(t, s.MergeAccount(ctx, store.AccountPatch{OutstandingBalance: account.Amount(100)}))

		snaps := rec.all()
		require.Len(t, snaps, 3)
		assert.Equal(t, uint64(0), snaps[0].Version)
		assert.Equal(t, uint64(1), snaps[1].Version)
		assert.Equal(t, uint64(2), snaps[2].Version)
		assert.Len(t, snaps[1].Policies, 1)
		assert.Equal(t, int64(0), snaps[1].Balance())
		assert.Equal(t, int64(100), snaps[2].Balance())
	})

	t.Run("batched update notifies once with the full result", func(t *testing.T) {
		t.Parallel()
		s := store.New()
		id := uuid.New()
		require.NoError(t, s.SetPolicy(ctx, policy.Policy{ID: id, Type: policy.TypeTeam}))

		rec := &recorder{}
		unsubscribe := s.Subscribe(rec.record)
		defer unsubscribe()

		err := s.Update(ctx, func(tx *store.Tx) error {
			if err := tx.RemovePolicy(id); err != nil {
				return err
			}
			tx.MergeAccount(store.AccountPatch{OutstandingBalance: account.Amount(100)})
			return nil
		})
		require.NoError(t, err)

		snaps := rec.all()
		require.Len(t, snaps, 2)
		assert.Empty(t, snaps[1].Policies)
		assert.Equal(t, int64(100), snaps[1].Balance())
	})

	t.Run("failed update applies nothing", func(t *testing.T) {
		t.Parallel()
		s := store.New()
		rec := &recorder{}
		unsubscribe := s.Subscribe(rec.record)
		defer unsubscribe()

		boom := errors.New("boom")
		err := s.Update(ctx, func(tx *store.Tx) error {
			if err := tx.SetPolicy(policy.Policy{ID: uuid.New(), Type: policy.TypeTeam}); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)
		assert.Empty(t, s.Snapshot().Policies)
		assert.Len(t, rec.all(), 1)
	})

	t.Run("unchanged merge is not delivered", func(t *testing.T) {
		t.Parallel()
		s := store.New()
		p := policy.Policy{ID: uuid.New(), Type: policy.TypeTeam}
		require.NoError(t, s.SetPolicy(ctx, p))

		rec := &recorder{}
		unsubscribe := s.Subscribe(rec.record)
		defer unsubscribe()

		require.NoError(t, s.SetPolicy(ctx, p))
		assert.Len(t, rec.all(), 1)
	})

	t.Run("unsubscribe stops delivery", func(t *testing.T) {
		t.Parallel()
		s := store.New()
		rec := &recorder{}
		unsubscribe := s.Subscribe(rec.record)
		unsubscribe()
		unsubscribe()

		require.NoError(t, s.SetPolicy(ctx, policy.Policy{ID: uuid.New(), Type: policy.TypeTeam}))
		assert.Len(t, rec.all(), 1)
	})
}

func TestStore_Clear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := store.New()
	id := uuid.New()
	require.NoError(t, s.MergeAccount(ctx, store.AccountPatch{ID: &id, OutstandingBalance: account.Amount(10)}))
	require.NoError(t, s.SetPolicy(ctx, policy.Policy{ID: uuid.New(), Type: policy.TypeTeam, OwnerAccountID: id}))

	require.NoError(t, s.Clear(ctx))
	snap := s.Snapshot()
	assert.Empty(t, snap.Policies)
	assert.False(t, snap.Account.IsSignedIn())
	assert.Equal(t, int64(0), snap.Balance())
}

func TestStore_Close(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := store.New()
	ch := s.Watch(ctx)
	<-ch

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, ok := <-ch
	assert.False(t, ok, "watch channel closed")

	err := s.SetPolicy(ctx, policy.Policy{ID: uuid.New(), Type: policy.TypeTeam})
	require.ErrorIs(t, err, store.ErrStoreClosed)
}

func TestStore_Watch(t *testing.T) {
	t.Parallel()

	t.Run("slow reader gets the latest snapshot", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		s := store.New()
		ch := s.Watch(ctx)

		for i := int64(1); i <= 5; i++ {
			require.NoError(t, s.MergeAccount(ctx, store.AccountPatch{OutstandingBalance: account.Amount(i)}))
		}

		select {
		case snap := <-ch:
			assert.Equal(t, int64(5), snap.Balance())
			assert.Equal(t, uint64(5), snap.Version)
		case <-time.After(time.Second):
			t.Fatal("no snapshot received")
		}
	})

	t.Run("close releases watchers with a live context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		s := store.New()
		ch := s.Watch(ctx)
		<-ch

		closed := make(chan struct{})
		go func() {
			_ = s.Close()
			close(closed)
		}()

		select {
		case <-closed:
		case <-time.After(time.Second):
			t.Fatal("Close waited on the watch context")
		}
		_, ok := <-ch
		assert.False(t, ok)
	})

	t.Run("context cancel closes channel", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		s := store.New()
		ch := s.Watch(ctx)
		<-ch

		cancel()

		select {
		case _, ok := <-ch:
			assert.False(t, ok)
		case <-time.After(time.Second):
			t.Fatal("channel not closed")
		}
	})
}
