package domain

import "errors"

// Error kinds every operation reports. Handlers map these onto HTTP status
// codes with errors.Is; anything outside the taxonomy surfaces as a 500.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
)
