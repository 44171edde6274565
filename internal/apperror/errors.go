package apperror

import "errors"

// Sentinels are wrapped with fmt.Errorf("%w: ...") and matched with errors.Is
// at the HTTP boundary.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrPersistence  = errors.New("persistence failure")
	ErrDelivery     = errors.New("delivery failure")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)
