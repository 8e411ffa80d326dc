// Package subscription derives the subscription plan of the signed-in
// account and decides whether the subscription surface is shown.
//
// The plan comes from the first paid workspace the account owns, in the
// collection's insertion order; Personal workspaces never count. Visibility
// is the plan composed with the outstanding balance:
//
//	shouldShow := subscription.ShouldShow(plan, balance) // plan != none || balance > 0
//
// Both functions are pure projections of a store snapshot and are meant to be
// recomputed on every change notification:
//
//	unsubscribe := s.Subscribe(func(snap store.Snapshot) {
//		v := subscription.FromSnapshot(snap)
//		render(v.Plan, v.ShouldShowSubscription)
//	})
package subscription
