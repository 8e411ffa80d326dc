package store

import (
	"slices"

	"github.com/google/uuid"

	"github.com/dmitrymomot/workspacebilling/pkg/account"
	"github.com/dmitrymomot/workspacebilling/pkg/policy"
)

// Snapshot is a fully applied view of the store at one commit.
// Policies are in collection insertion order. Treat it as read-only.
type Snapshot struct {
	Version  uint64          `json:"version"`
	Policies []policy.Policy `json:"policies"`
	Account  account.State   `json:"account"`
}

// Policy returns the record with the given id.
func (s Snapshot) Policy(id uuid.UUID) (policy.Policy, bool) {
	return policy.Find(s.Policies, id)
}

// Balance returns the account's outstanding balance, zero when absent.
func (s Snapshot) Balance() int64 {
	return s.Account.Balance()
}

// clone returns a deep copy so a snapshot handed out never aliases store state.
func (s Snapshot) clone() Snapshot {
	out := Snapshot{
		Version:  s.Version,
		Policies: slices.Clone(s.Policies),
		Account:  s.Account,
	}
	if s.Account.OutstandingBalance != nil {
		out.Account.OutstandingBalance = account.Amount(*s.Account.OutstandingBalance)
	}
	return out
}
