package binder

import "errors"

var (
	ErrUnsupportedMediaType = errors.New("binder: unsupported media type")
	ErrMissingContentType   = errors.New("binder: missing content type")
	ErrInvalidJSON          = errors.New("binder: invalid JSON")
	ErrBodyTooLarge         = errors.New("binder: request body too large")
)
