package policy

import (
	"iter"

	"github.com/google/uuid"
)

// Owned yields the policies owned by accountID, preserving input order.
func Owned(policies []Policy, accountID uuid.UUID) iter.Seq[Policy] {
	return func(yield func(Policy) bool) {
		for _, p := range policies {
			if !p.IsOwnedBy(accountID) {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}

// OwnedPaid yields the paid policies owned by accountID, preserving input order.
func OwnedPaid(policies []Policy, accountID uuid.UUID) iter.Seq[Policy] {
	return func(yield func(Policy) bool) {
		for p := range Owned(policies, accountID) {
			if !p.IsPaid() {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}

// FirstOwnedPaid returns the first paid policy owned by accountID in input order.
func FirstOwnedPaid(policies []Policy, accountID uuid.UUID) (Policy, bool) {
	for p := range OwnedPaid(policies, accountID) {
		return p, true
	}
	return Policy{}, false
}

// CountOwnedPaid returns how many paid policies accountID owns.
func CountOwnedPaid(policies []Policy, accountID uuid.UUID) int {
	n := 0
	for range OwnedPaid(policies, accountID) {
		n++
	}
	return n
}

// Find returns the policy with the given id.
func Find(policies []Policy, id uuid.UUID) (Policy, bool) {
	for _, p := range policies {
		if p.ID == id {
			return p, true
		}
	}
	return Policy{}, false
}
