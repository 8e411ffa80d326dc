package session

import "errors"

var (
	ErrWorkspaceNotFound = errors.New("session: workspace not found")
	ErrNotOwner          = errors.New("session: workspace is not owned by the current account")
	ErrDeletionPending   = errors.New("session: workspace deletion already in progress")
	ErrSignedOut         = errors.New("session: no account signed in")
	ErrDeleteFailed      = errors.New("session: workspace deletion failed")
)
