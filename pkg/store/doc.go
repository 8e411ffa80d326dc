// Package store provides the observable key-value store that feeds the
// billing projections of one signed-in session.
//
// The store holds a collection of policy records keyed by "policy_<id>" and a
// single account state under the well-known "account" key. Both support
// partial merge updates; merging a nil policy patch removes the record.
// Several merges can be grouped with Update so subscribers only ever see the
// fully applied result.
//
// # Subscriptions
//
// Subscribe delivers every committed snapshot synchronously and in commit
// order, starting with the current one:
//
//	unsubscribe := s.Subscribe(func(snap store.Snapshot) {
//		plan := subscription.Resolve(snap.Policies, snap.Account.ID)
//		_ = plan
//	})
//	defer unsubscribe()
//
// Watch returns a latest-value channel for asynchronous readers such as SSE
// streams. A slow reader skips intermediate snapshots but always receives the
// newest one.
//
// # Persistence
//
// WithPersister saves every commit. RedisPersister keeps the snapshot as JSON
// in Redis; Restore loads it back on startup.
package store
