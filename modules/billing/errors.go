package billing

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/workspacebilling/handler"
	"github.com/dmitrymomot/workspacebilling/pkg/store"
	"github.com/dmitrymomot/workspacebilling/svc/session"
)

var (
	ErrInvalidWorkspaceID = handler.NewHTTPError(http.StatusBadRequest, "invalid_workspace_id")
	ErrInvalidBody        = handler.NewHTTPError(http.StatusBadRequest, "invalid_body")
	ErrInvalidType        = handler.NewHTTPError(http.StatusUnprocessableEntity, "invalid_workspace_type")
	ErrNegativeBalance    = handler.NewHTTPError(http.StatusUnprocessableEntity, "negative_balance")
	ErrNoPromptOpen       = handler.NewHTTPError(http.StatusConflict, "no_prompt_open")
)

// httpError maps domain errors to HTTP errors; unknown errors pass through
// and render as 500.
func httpError(err error) error {
	var mapped handler.HTTPError
	switch {
	case errors.Is(err, session.ErrWorkspaceNotFound):
		mapped = handler.ErrNotFound
	case errors.Is(err, session.ErrNotOwner):
		mapped = handler.ErrForbidden
	case errors.Is(err, session.ErrSignedOut):
		mapped = handler.NewHTTPError(http.StatusUnauthorized, "signed_out")
	case errors.Is(err, session.ErrDeletionPending):
		mapped = handler.NewHTTPError(http.StatusConflict, "deletion_pending")
	case errors.Is(err, store.ErrPolicyTypeRequired):
		mapped = ErrInvalidType
	case errors.Is(err, store.ErrStoreClosed):
		mapped = handler.ErrServiceUnavailable
	default:
		return err
	}
	return errors.Join(err, mapped)
}
