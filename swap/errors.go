// Package swap implements the coordination engine behind the slot-swap API:
// slot status transitions, the swap-request lifecycle, and the locking
// protocol that keeps concurrent accepts from double-booking a slot.
package swap

import "errors"

// Validation errors. Recoverable; controllers surface them verbatim.
var (
	ErrInvalidRange      = errors.New("end time must be after start time")
	ErrInvalidTransition = errors.New("status must be BUSY or SWAPPABLE")
	ErrSelfSwap          = errors.New("cannot swap between slots owned by the same user")
	ErrSlotNotSwappable  = errors.New("slot is not swappable")
	ErrDuplicateRequest  = errors.New("an identical pending request already exists")
)

// Authorization and lookup errors. Never retried.
var (
	ErrUnauthorized = errors.New("not allowed to act on this resource")
	ErrNotFound     = errors.New("not found")
)

// State errors. ErrConflict means the caller lost a race to a concurrent
// operation and is safe to retry against fresh data.
var (
	ErrNotPending           = errors.New("request is no longer pending")
	ErrConflict             = errors.New("slot is no longer available")
	ErrSlotLocked           = errors.New("slot is part of an in-flight swap")
	ErrPendingRequestExists = errors.New("slot is referenced by a pending swap request")
)
