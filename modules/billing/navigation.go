package billing

import (
	"context"
	"sync"

	"github.com/dmitrymomot/workspacebilling/pkg/deletionguard"
)

type navigationKey struct{}

// navigation records the route a guard asked for while handling one request.
type navigation struct {
	mu    sync.Mutex
	route string
}

func withNavigation(ctx context.Context) (context.Context, *navigation) {
	nav := &navigation{}
	return context.WithValue(ctx, navigationKey{}, nav), nav
}

func (n *navigation) Route() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.route
}

// Navigator turns guard navigation into an HTTP redirect of the request that
// confirmed the prompt. Pass it to deletionguard.New for guards served by
// this module.
func Navigator() deletionguard.Navigator {
	return deletionguard.NavigatorFunc(func(ctx context.Context, route string) {
		if nav, ok := ctx.Value(navigationKey{}).(*navigation); ok {
			nav.mu.Lock()
			nav.route = route
			nav.mu.Unlock()
		}
	})
}
