package subscription

import (
	"github.com/google/uuid"

	"github.com/dmitrymomot/workspacebilling/pkg/policy"
)

// Plan is the paid tier derived from the workspaces an account owns.
// PlanNone means the account owns no paid workspace.
type Plan string

const (
	PlanNone      Plan = ""
	PlanTeam      Plan = Plan(policy.TypeTeam)
	PlanCorporate Plan = Plan(policy.TypeCorporate)
)

// IsNone reports whether no plan was derived.
func (p Plan) IsNone() bool {
	return p == PlanNone
}

// String returns the plan name, or "none".
func (p Plan) String() string {
	if p.IsNone() {
		return "none"
	}
	return string(p)
}

// Resolve returns the plan of the first paid workspace owned by accountID,
// in the order of policies. Personal workspaces never contribute.
func Resolve(policies []policy.Policy, accountID uuid.UUID) Plan {
	p, ok := policy.FirstOwnedPaid(policies, accountID)
	if !ok {
		return PlanNone
	}
	return Plan(p.Type)
}

// ShouldShow reports whether the subscription surface must stay reachable.
// A positive balance keeps it visible even after the last paid workspace is
// gone, otherwise the account could not settle what it owes.
func ShouldShow(plan Plan, balance int64) bool {
	return !plan.IsNone() || balance > 0
}
