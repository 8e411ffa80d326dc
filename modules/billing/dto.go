package billing

import (
	"github.com/google/uuid"

	"github.com/dmitrymomot/workspacebilling/pkg/deletionguard"
	"github.com/dmitrymomot/workspacebilling/pkg/policy"
	"github.com/dmitrymomot/workspacebilling/pkg/store"
	"github.com/dmitrymomot/workspacebilling/svc/session"
)

// signals mirror the view under DataStar signal names.
type signals struct {
	SubscriptionPlan       string `json:"subscriptionPlan"`
	ShouldShowSubscription bool   `json:"shouldShowSubscription"`
	WouldBlockDeletion     bool   `json:"wouldBlockDeletion"`
	OutstandingBalance     int64  `json:"outstandingBalance"`
}

func signalsFromView(v session.View) signals {
	return signals{
		SubscriptionPlan:       string(v.SubscriptionPlan),
		ShouldShowSubscription: v.ShouldShowSubscription,
		WouldBlockDeletion:     v.WouldBlockDeletion,
		OutstandingBalance:     v.OutstandingBalance,
	}
}

type promptSignals struct {
	DeletionPrompt deletionguard.Prompt `json:"deletionPrompt"`
}

// workspaceRequest is the body of PUT /workspaces/{id}. Absent fields are
// left unchanged.
type workspaceRequest struct {
	Name           *string      `json:"name"`
	Type           *policy.Type `json:"type"`
	OwnerAccountID *uuid.UUID   `json:"owner_account_id"`
}

func (r workspaceRequest) patch() *store.PolicyPatch {
	return &store.PolicyPatch{
		Name:           r.Name,
		Type:           r.Type,
		OwnerAccountID: r.OwnerAccountID,
	}
}

// accountRequest is the body of PATCH /account.
type accountRequest struct {
	ID                 *uuid.UUID `json:"id"`
	OutstandingBalance *int64     `json:"outstanding_balance"`
	ClearBalance       bool       `json:"clear_balance"`
}

func (r accountRequest) patch() store.AccountPatch {
	return store.AccountPatch{
		ID:                 r.ID,
		OutstandingBalance: r.OutstandingBalance,
		ClearBalance:       r.ClearBalance,
	}
}
