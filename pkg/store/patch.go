package store

import (
	"github.com/google/uuid"

	"github.com/dmitrymomot/workspacebilling/pkg/account"
	"github.com/dmitrymomot/workspacebilling/pkg/policy"
)

const (
	// PolicyKeyPrefix is the collection prefix of policy records.
	PolicyKeyPrefix = "policy_"
	// AccountKey is the well-known key of the account state.
	AccountKey = "account"
)

// PolicyKey returns the store key of a policy record.
func PolicyKey(id uuid.UUID) string {
	return PolicyKeyPrefix + id.String()
}

// PolicyPatch is a partial update of a policy record. Nil fields are left untouched.
// A nil *PolicyPatch passed to a merge removes the record.
type PolicyPatch struct {
	Name           *string
	Type           *policy.Type
	OwnerAccountID *uuid.UUID
	PendingAction  *policy.PendingAction
}

func (p *PolicyPatch) apply(dst *policy.Policy) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Type != nil {
		dst.Type = *p.Type
	}
	if p.OwnerAccountID != nil {
		dst.OwnerAccountID = *p.OwnerAccountID
	}
	if p.PendingAction != nil {
		dst.PendingAction = *p.PendingAction
	}
}

// PatchFromPolicy builds a patch that sets every field of p.
func PatchFromPolicy(p policy.Policy) *PolicyPatch {
	return &PolicyPatch{
		Name:           &p.Name,
		Type:           &p.Type,
		OwnerAccountID: &p.OwnerAccountID,
		PendingAction:  &p.PendingAction,
	}
}

// AccountPatch is a partial update of the account state.
// ClearBalance makes the balance absent and wins over OutstandingBalance.
type AccountPatch struct {
	ID                 *uuid.UUID
	OutstandingBalance *int64
	ClearBalance       bool
}

func (p AccountPatch) apply(dst *account.State) {
	if p.ID != nil {
		dst.ID = *p.ID
	}
	if p.ClearBalance {
		dst.OutstandingBalance = nil
		return
	}
	if p.OutstandingBalance != nil {
		dst.OutstandingBalance = account.Amount(*p.OutstandingBalance)
	}
}
