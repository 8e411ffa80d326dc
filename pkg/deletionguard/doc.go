// Package deletionguard intercepts workspace deletion when the account has an
// outstanding balance and the workspace is its last paid one.
//
// A Guard is a two-state machine (idle, prompt_open). Callers push Inputs on
// every store snapshot and call RequestDeletion before deleting:
//
//	g := deletionguard.New(nav, deletionguard.WithTexts(translator))
//	g.Update(deletionguard.Inputs{OwnedPaidPolicies: 1, OutstandingBalance: 100})
//	if g.RequestDeletion(ctx) {
//		render(g.Prompt(ctx)) // abort the deletion, show the prompt
//		return
//	}
//
// Confirm closes the prompt and navigates once to the settlement route;
// Cancel closes it without navigating. Both are no-ops returning false when
// the prompt is not open.
package deletionguard
