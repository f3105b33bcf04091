package service

import (
	"errors"
	"fmt"
)

// Validation errors surfaced before any state change
var (
	ErrInvalidQuantity  = errors.New("quantity must be a positive integer")
	ErrInvalidDateRange = errors.New("start date must not be after end date")
	ErrInvalidStatus    = errors.New("invalid board status")
	ErrWindowLocked     = errors.New("rental window cannot be changed while the board has items")
)

// CascadeError reports a partially failed board deletion. Every remaining
// item still has its held reservation; retrying DeleteBoard completes the
// cascade.
type CascadeError struct {
	Remaining int
	Err       error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("%d item(s) still reserved: %v", e.Remaining, e.Err)
}

func (e *CascadeError) Unwrap() error {
	return e.Err
}
