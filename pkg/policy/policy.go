package policy

import (
	"github.com/google/uuid"
)

// Type is the monetization variant of a workspace.
type Type string

const (
	TypePersonal  Type = "personal"
	TypeTeam      Type = "team"
	TypeCorporate Type = "corporate"
)

// IsPaid reports whether the type is monetized. Everything except Personal is paid.
func (t Type) IsPaid() bool {
	return t != TypePersonal
}

// Valid reports whether t is one of the known types.
func (t Type) Valid() bool {
	switch t {
	case TypePersonal, TypeTeam, TypeCorporate:
		return true
	default:
		return false
	}
}

// PendingAction marks an optimistic change that the backend has not confirmed yet.
type PendingAction string

const (
	PendingActionNone   PendingAction = ""
	PendingActionDelete PendingAction = "delete"
)

// Policy is a workspace the current user has a relationship to.
// Records are owned by the store; callers only read snapshots.
type Policy struct {
	ID             uuid.UUID     `json:"id"`
	Name           string        `json:"name,omitempty"`
	Type           Type          `json:"type"`
	OwnerAccountID uuid.UUID     `json:"owner_account_id"`
	PendingAction  PendingAction `json:"pending_action,omitempty"`
}

// IsPaid reports whether the workspace is monetized.
func (p Policy) IsPaid() bool {
	return p.Type.IsPaid()
}

// IsOwnedBy reports whether accountID owns the workspace.
// The zero account never owns anything, so a signed-out snapshot yields no owned policies.
func (p Policy) IsOwnedBy(accountID uuid.UUID) bool {
	return accountID != uuid.Nil && p.OwnerAccountID == accountID
}

// IsPendingDelete reports whether a delete was issued but not yet committed.
func (p Policy) IsPendingDelete() bool {
	return p.PendingAction == PendingActionDelete
}
