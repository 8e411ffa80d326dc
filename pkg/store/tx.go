package store

import (
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/dmitrymomot/workspacebilling/pkg/account"
	"github.com/dmitrymomot/workspacebilling/pkg/policy"
)

// state is the mutable content behind the store.
// order keeps the collection insertion order; records holds the values.
type state struct {
	order   []uuid.UUID
	records map[uuid.UUID]policy.Policy
	account account.State
}

func newState() state {
	return state{records: make(map[uuid.UUID]policy.Policy)}
}

func (s state) clone() state {
	out := state{
		order:   slices.Clone(s.order),
		records: maps.Clone(s.records),
		account: s.account,
	}
	if out.records == nil {
		out.records = make(map[uuid.UUID]policy.Policy)
	}
	if s.account.OutstandingBalance != nil {
		out.account.OutstandingBalance = account.Amount(*s.account.OutstandingBalance)
	}
	return out
}

func (s state) snapshot(version uint64) Snapshot {
	policies := make([]policy.Policy, 0, len(s.order))
	for _, id := range s.order {
		policies = append(policies, s.records[id])
	}
	return Snapshot{
		Version:  version,
		Policies: policies,
		Account:  s.account,
	}.clone()
}

func stateFromSnapshot(snap Snapshot) state {
	st := newState()
	for _, p := range snap.Policies {
		if p.ID == uuid.Nil {
			continue
		}
		if _, exists := st.records[p.ID]; !exists {
			st.order = append(st.order, p.ID)
		}
		st.records[p.ID] = p
	}
	st.account = snap.Account
	return st.clone()
}

// Tx groups several merges into one commit.
// Nothing a Tx does is visible to subscribers until the commit succeeds.
type Tx struct {
	st      state
	changed bool
}

// MergePolicy merges patch into the record with the given id.
// A nil patch removes the record. Creating a record requires a Type.
func (tx *Tx) MergePolicy(id uuid.UUID, patch *PolicyPatch) error {
	if id == uuid.Nil {
		return ErrNilPolicyID
	}

	current, exists := tx.st.records[id]
	if patch == nil {
		if !exists {
			return nil
		}
		delete(tx.st.records, id)
		tx.st.order = slices.DeleteFunc(tx.st.order, func(v uuid.UUID) bool { return v == id })
		tx.changed = true
		return nil
	}

	if !exists {
		if patch.Type == nil {
			return ErrPolicyTypeRequired
		}
		current = policy.Policy{ID: id}
		tx.st.order = append(tx.st.order, id)
	}

	next := current
	patch.apply(&next)
	if exists && next == current {
		return nil
	}

	tx.st.records[id] = next
	tx.changed = true
	return nil
}

// SetPolicy replaces the record with p, creating it if needed.
func (tx *Tx) SetPolicy(p policy.Policy) error {
	return tx.MergePolicy(p.ID, PatchFromPolicy(p))
}

// RemovePolicy removes the record with the given id. Missing records are ignored.
func (tx *Tx) RemovePolicy(id uuid.UUID) error {
	return tx.MergePolicy(id, nil)
}

// MergeAccount merges patch into the account state.
func (tx *Tx) MergeAccount(patch AccountPatch) {
	before := tx.st.account
	next := before
	patch.apply(&next)

	if next.ID != before.ID || !sameAmount(next.OutstandingBalance, before.OutstandingBalance) {
		tx.st.account = next
		tx.changed = true
	}
}

// Policy returns the record as seen inside the transaction.
func (tx *Tx) Policy(id uuid.UUID) (policy.Policy, bool) {
	p, ok := tx.st.records[id]
	return p, ok
}

func sameAmount(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
