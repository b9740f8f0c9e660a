package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgActivityNotFound = "no active vocational activity"
	ErrMsgActivityActive   = "an activity is already running"

	ErrMsgResourceNotFound    = "resource not found"
	ErrMsgResourceUnavailable = "resource not available at this location"

	ErrMsgToolRequired      = "required tool not equipped"
	ErrMsgInsufficientLevel = "skill level too low"

	ErrMsgBaitRequired = "bait must be selected for fishing"
	ErrMsgBaitInvalid  = "selected bait is not usable"

	ErrMsgInsufficientMaterials = "insufficient materials"
	ErrMsgInsufficientQuantity  = "insufficient quantity"
	ErrMsgInventoryFull         = "inventory is full"

	ErrMsgItemNotFound   = "item not found"
	ErrMsgPlayerNotFound = "player not found"

	ErrMsgTxClosed = "tx is closed"
)

// Common domain errors.
// Wrap these with fmt.Errorf("%w: %s", domain.ErrXxx, details) for context.
var (
	ErrActivityNotFound = errors.New(ErrMsgActivityNotFound)
	ErrActivityActive   = errors.New(ErrMsgActivityActive)

	ErrResourceNotFound    = errors.New(ErrMsgResourceNotFound)
	ErrResourceUnavailable = errors.New(ErrMsgResourceUnavailable)

	ErrToolRequired      = errors.New(ErrMsgToolRequired)
	ErrInsufficientLevel = errors.New(ErrMsgInsufficientLevel)

	ErrBaitRequired = errors.New(ErrMsgBaitRequired)
	ErrBaitInvalid  = errors.New(ErrMsgBaitInvalid)

	ErrInsufficientMaterials = errors.New(ErrMsgInsufficientMaterials)
	ErrInsufficientQuantity  = errors.New(ErrMsgInsufficientQuantity)
	ErrInventoryFull         = errors.New(ErrMsgInventoryFull)

	ErrItemNotFound   = errors.New(ErrMsgItemNotFound)
	ErrPlayerNotFound = errors.New(ErrMsgPlayerNotFound)
)
