package engine

import "errors"

// Errors returned by the engine.
var (
	ErrDuplicateID         = errors.New("order id already exists")
	ErrNotFound            = errors.New("id not found")
	ErrInvalidStatus       = errors.New("new orders must have status PENDING")
	ErrInvalidBusinessType = errors.New("invalid business type")
	ErrInvalidTaxRate      = errors.New("tax rate must be between 0 and 100")
	ErrNegativeTotal       = errors.New("order total must not be negative")
)

// MissingIDPolicy controls what lifecycle and module operations do when
// given an id that is not present: reject with ErrNotFound (the
// hardened default, so the till can surface a visible failure) or
// silently ignore (the behavior the original UI relied on).
type MissingIDPolicy int

const (
	RejectMissing MissingIDPolicy = iota
	IgnoreMissing
)
