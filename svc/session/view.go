package session

import (
	"github.com/dmitrymomot/workspacebilling/pkg/deletionguard"
	"github.com/dmitrymomot/workspacebilling/pkg/policy"
	"github.com/dmitrymomot/workspacebilling/pkg/store"
	"github.com/dmitrymomot/workspacebilling/pkg/subscription"
)

// View is everything the presentation layer reads without side effects.
type View struct {
	Version                uint64            `json:"version"`
	SubscriptionPlan       subscription.Plan `json:"subscription_plan"`
	ShouldShowSubscription bool              `json:"should_show_subscription"`
	WouldBlockDeletion     bool              `json:"would_block_deletion"`
	OwnedPaidPolicies      int               `json:"owned_paid_policies"`
	OutstandingBalance     int64             `json:"outstanding_balance"`
}

// ViewFromSnapshot recomputes the view. Pure, safe to call on every change.
func ViewFromSnapshot(snap store.Snapshot) View {
	vis := subscription.FromSnapshot(snap)
	owned := policy.CountOwnedPaid(snap.Policies, snap.Account.ID)
	return View{
		Version:                snap.Version,
		SubscriptionPlan:       vis.Plan,
		ShouldShowSubscription: vis.ShouldShowSubscription,
		WouldBlockDeletion:     deletionguard.WouldBlock(vis.OutstandingBalance, owned),
		OwnedPaidPolicies:      owned,
		OutstandingBalance:     vis.OutstandingBalance,
	}
}

// GuardInputs returns the deletion guard inputs carried by the view.
func (v View) GuardInputs() deletionguard.Inputs {
	return deletionguard.Inputs{
		OwnedPaidPolicies:  v.OwnedPaidPolicies,
		OutstandingBalance: v.OutstandingBalance,
	}
}
