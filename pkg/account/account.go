// Package account holds the process-wide state of the signed-in account.
package account

import (
	"github.com/google/uuid"
)

// State is the account of the current session.
// OutstandingBalance is in the smallest currency unit (cents for USD) and may be absent.
type State struct {
	ID                 uuid.UUID `json:"id"`
	OutstandingBalance *int64    `json:"outstanding_balance,omitempty"`
}

// Balance returns the outstanding balance with absence normalized to zero.
func (s State) Balance() int64 {
	if s.OutstandingBalance == nil {
		return 0
	}
	return *s.OutstandingBalance
}

// HasBalance reports whether the account owes money.
func (s State) HasBalance() bool {
	return s.Balance() > 0
}

// IsSignedIn reports whether the state belongs to a session.
func (s State) IsSignedIn() bool {
	return s.ID != uuid.Nil
}

// Amount returns a pointer to v, for building states and patches inline.
func Amount(v int64) *int64 {
	return &v
}
