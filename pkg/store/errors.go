package store

import "errors"

var (
	ErrStoreClosed        = errors.New("store: closed")
	ErrPolicyTypeRequired = errors.New("store: policy type is required for a new record")
	ErrNilPolicyID        = errors.New("store: policy id cannot be nil")
	ErrPersistFailed      = errors.New("store: failed to persist snapshot")
	ErrRestoreFailed      = errors.New("store: failed to restore snapshot")
)
