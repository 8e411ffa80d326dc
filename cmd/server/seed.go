package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/workspacebilling/pkg/policy"
	"github.com/dmitrymomot/workspacebilling/pkg/store"
)

// seed is the initial session state for local runs:
//
//	account:
//	  id: 6f1c...
//	  outstanding_balance: 100
//	policies:
//	  - id: 9a2e...
//	    name: Acme
//	    type: team
//	    owner_account_id: 6f1c...
type seed struct {
	Account struct {
		ID                 uuid.UUID `yaml:"id"`
		OutstandingBalance *int64    `yaml:"outstanding_balance"`
	} `yaml:"account"`
	Policies []struct {
		ID             uuid.UUID   `yaml:"id"`
		Name           string      `yaml:"name"`
		Type           policy.Type `yaml:"type"`
		OwnerAccountID uuid.UUID   `yaml:"owner_account_id"`
	} `yaml:"policies"`
}

func readSeed(r io.Reader) (seed, error) {
	var s seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return seed{}, fmt.Errorf("decode seed: %w", err)
	}
	for i, p := range s.Policies {
		if !p.Type.Valid() {
			return seed{}, fmt.Errorf("seed policy %d: unknown type %q", i, p.Type)
		}
	}
	return s, nil
}

func loadSeedFile(path string) (seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return seed{}, err
	}
	defer f.Close()
	return readSeed(f)
}

// apply writes the seed in a single commit.
func (s seed) apply(ctx context.Context, st *store.Store) error {
	return st.Update(ctx, func(tx *store.Tx) error {
		patch := store.AccountPatch{OutstandingBalance: s.Account.OutstandingBalance}
		if s.Account.ID != uuid.Nil {
			patch.ID = &s.Account.ID
		}
		tx.MergeAccount(patch)

		for _, p := range s.Policies {
			err := tx.SetPolicy(policy.Policy{
				ID:             p.ID,
				Name:           p.Name,
				Type:           p.Type,
				OwnerAccountID: p.OwnerAccountID,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}
