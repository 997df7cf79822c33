// Package apperr defines the error kinds shared by services and handlers.
// Domain errors wrap one of these sentinels so the HTTP boundary can map
// them to a status code with errors.Is.
package apperr

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
)
