package services

import "errors"

// Domain error taxonomy. Handlers map these onto HTTP responses; services
// stay transport-free and wrap them with context via fmt.Errorf("%w: ...").
var (
	// ErrValidation flags missing or malformed input.
	ErrValidation = errors.New("validation failed")
	// ErrForbidden flags an actor lacking the role or ownership for an action.
	ErrForbidden = errors.New("forbidden")
	// ErrIllegalTransition flags a status edge not present in the lifecycle.
	ErrIllegalTransition = errors.New("illegal status transition")
	// ErrNotFound flags a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState flags an action against an entity in the wrong state.
	ErrInvalidState = errors.New("invalid state for this action")
	// ErrConflict flags exhausted retries on a contended transaction.
	ErrConflict = errors.New("conflicting concurrent update")
)
