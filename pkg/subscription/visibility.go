package subscription

import (
	"github.com/dmitrymomot/workspacebilling/pkg/store"
)

// Visibility is the projection of a snapshot the presentation layer consumes.
type Visibility struct {
	Plan                   Plan  `json:"subscription_plan"`
	ShouldShowSubscription bool  `json:"should_show_subscription"`
	OutstandingBalance     int64 `json:"outstanding_balance"`
}

// FromSnapshot derives visibility from a committed snapshot. It is pure and
// cheap, so it can run on every change notification.
func FromSnapshot(snap store.Snapshot) Visibility {
	plan := Resolve(snap.Policies, snap.Account.ID)
	balance := snap.Balance()
	return Visibility{
		Plan:                   plan,
		ShouldShowSubscription: ShouldShow(plan, balance),
		OutstandingBalance:     balance,
	}
}
