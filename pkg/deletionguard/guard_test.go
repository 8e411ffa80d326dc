package deletionguard_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/workspacebilling/pkg/deletionguard"
)

type mockNavigator struct {
	mock.Mock
}

func (m *mockNavigator) Navigate(ctx context.Context, route string) {
	m.Called(ctx, route)
}

func blocking() deletionguard.Inputs {
	return deletionguard.Inputs{OwnedPaidPolicies: 1, OutstandingBalance: 100}
}

func TestWouldBlock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		balance int64
		count   int
		want    bool
	}{
		{"no balance", 0, 1, false},
		{"balance on last paid workspace", 100, 1, true},
		{"balance with several paid workspaces", 100, 2, false},
		{"balance without paid workspaces", 100, 0, false},
		{"one cent", 1, 1, true},
		{"nothing", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, deletionguard.WouldBlock(tt.balance, tt.count))
			in := deletionguard.Inputs{OwnedPaidPolicies: tt.count, OutstandingBalance: tt.balance}
			assert.Equal(t, tt.want, in.WouldBlock())
		})
	}
}

func TestGuardRequestDeletion(t *testing.T) {
	t.Parallel()

	t.Run("not blocked stays idle", func(t *testing.T) {
		t.Parallel()
		nav := &mockNavigator{}
		g := deletionguard.New(nav, deletionguard.WithInputs(deletionguard.Inputs{OwnedPaidPolicies: 2, OutstandingBalance: 100}))

		assert.False(t, g.RequestDeletion(context.Background()))
		assert.Equal(t, deletionguard.StateIdle, g.State())
		assert.False(t, g.Prompt(context.Background()).Visible)
		nav.AssertNotCalled(t, "Navigate", mock.Anything, mock.Anything)
	})

	t.Run("blocked opens prompt", func(t *testing.T) {
		t.Parallel()
		g := deletionguard.New(nil)
		g.Update(blocking())

		assert.True(t, g.RequestDeletion(context.Background()))
		assert.Equal(t, deletionguard.StatePromptOpen, g.State())
		assert.True(t, g.Prompt(context.Background()).Visible)
	})

	t.Run("idempotent while prompt open", func(t *testing.T) {
		t.Parallel()
		g := deletionguard.New(nil, deletionguard.WithInputs(blocking()))

		assert.True(t, g.RequestDeletion(context.Background()))
		assert.True(t, g.RequestDeletion(context.Background()))
		assert.True(t, g.IsPromptOpen())
	})

	t.Run("input change does not close prompt", func(t *testing.T) {
		t.Parallel()
		g := deletionguard.New(nil, deletionguard.WithInputs(blocking()))
		require.True(t, g.RequestDeletion(context.Background()))

		g.Update(deletionguard.Inputs{OwnedPaidPolicies: 1})
		assert.False(t, g.WouldBlock())
		assert.False(t, g.RequestDeletion(context.Background()))
		assert.True(t, g.IsPromptOpen())
	})
}

func TestGuardConfirm(t *testing.T) {
	t.Parallel()

	t.Run("navigates exactly once", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		nav := &mockNavigator{}
		nav.On("Navigate", ctx, deletionguard.DefaultSettlementRoute).Return().Once()

		g := deletionguard.New(nav, deletionguard.WithInputs(blocking()))
		require.True(t, g.RequestDeletion(ctx))

		assert.True(t, g.Confirm(ctx))
		assert.Equal(t, deletionguard.StateIdle, g.State())

		assert.False(t, g.Confirm(ctx))
		nav.AssertExpectations(t)
		nav.AssertNumberOfCalls(t, "Navigate", 1)
	})

	t.Run("custom route", func(t *testing.T) {
		t.Parallel()
		var routes []string
		nav := deletionguard.NavigatorFunc(func(_ context.Context, route string) {
			routes = append(routes, route)
		})

		g := deletionguard.New(nav,
			deletionguard.WithInputs(blocking()),
			deletionguard.WithSettlementRoute("/billing"),
		)
		require.True(t, g.RequestDeletion(context.Background()))
		require.True(t, g.Confirm(context.Background()))
		assert.Equal(t, []string{"/billing"}, routes)
		assert.Equal(t, "/billing", g.SettlementRoute())
	})

	t.Run("from idle is a no-op", func(t *testing.T) {
		t.Parallel()
		nav := &mockNavigator{}
		g := deletionguard.New(nav)

		assert.False(t, g.Confirm(context.Background()))
		assert.Equal(t, deletionguard.StateIdle, g.State())
		nav.AssertNotCalled(t, "Navigate", mock.Anything, mock.Anything)
	})

	t.Run("nil navigator still closes", func(t *testing.T) {
		t.Parallel()
		g := deletionguard.New(nil, deletionguard.WithInputs(blocking()))
		require.True(t, g.RequestDeletion(context.Background()))
		assert.True(t, g.Confirm(context.Background()))
		assert.False(t, g.IsPromptOpen())
	})
}

func TestGuardCancel(t *testing.T) {
	t.Parallel()

	t.Run("closes without navigation", func(t *testing.T) {
		t.Parallel()
		nav := &mockNavigator{}
		g := deletionguard.New(nav, deletionguard.WithInputs(blocking()))
		require.True(t, g.RequestDeletion(context.Background()))

		assert.True(t, g.Cancel(context.Background()))
		assert.Equal(t, deletionguard.StateIdle, g.State())
		nav.AssertNotCalled(t, "Navigate", mock.Anything, mock.Anything)
	})

	t.Run("from idle is a no-op", func(t *testing.T) {
		t.Parallel()
		g := deletionguard.New(nil)
		assert.False(t, g.Cancel(context.Background()))
	})

	t.Run("prompt can reopen after cancel", func(t *testing.T) {
		t.Parallel()
		g := deletionguard.New(nil, deletionguard.WithInputs(blocking()))
		require.True(t, g.RequestDeletion(context.Background()))
		require.True(t, g.Cancel(context.Background()))
		assert.True(t, g.RequestDeletion(context.Background()))
	})
}

func TestGuardConcurrentUse(t *testing.T) {
	t.Parallel()

	g := deletionguard.New(nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Update(deletionguard.Inputs{OwnedPaidPolicies: i % 3, OutstandingBalance: 100})
			g.RequestDeletion(ctx)
			g.Cancel(ctx)
		}()
	}
	wg.Wait()

	g.Update(blocking())
	assert.True(t, g.RequestDeletion(ctx))
}
