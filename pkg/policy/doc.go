// Package policy models the workspaces (policies) a signed-in account is
// related to and provides pure selectors over a snapshot of them.
//
// A policy is either Personal, which is never monetized, or a paid variant
// (Team, Corporate). Selectors always preserve the order of the input slice,
// which is the insertion order of the store collection the slice came from:
//
//	first, ok := policy.FirstOwnedPaid(snap.Policies, snap.Account.ID)
//	count := policy.CountOwnedPaid(snap.Policies, snap.Account.ID)
//
// The package never mutates records; they belong to the store.
package policy
