package trade

import "errors"

// Validation errors. Each one rejects the operation with no state mutation;
// callers match with errors.Is.
var (
	ErrInsufficientExternalFunds = errors.New("insufficient external funds")
	ErrBelowMinimum              = errors.New("amount below minimum trade units")
	ErrAboveMaxDeposit           = errors.New("amount above maximum single deposit")
	ErrInsufficientBalance       = errors.New("insufficient balance")
	ErrInsufficientHolding       = errors.New("insufficient holding")
	ErrInvalidPrice              = errors.New("invalid price")
	ErrInvalidAmount             = errors.New("invalid amount")
)

// ErrExternalConsume is returned when the external currency source refuses
// to release the funds at commit time; the deposit is rolled back.
var ErrExternalConsume = errors.New("external source failed to release funds")

// ErrResolved is returned when Commit or Cancel is called on a pending
// confirmation that has already been committed or cancelled.
var ErrResolved = errors.New("pending confirmation already resolved")
