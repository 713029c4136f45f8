package models

import "errors"

// Domain errors returned by entity mutation methods. Handlers map these
// to 4xx responses instead of surfacing inconsistent derived state.
var (
	ErrNegativeAmount      = errors.New("amount must not be negative")
	ErrNonPositiveAmount   = errors.New("amount must be greater than zero")
	ErrInsufficientStock   = errors.New("stock cannot go below zero")
	ErrUnknownStatKind     = errors.New("stat kind must be credit or payment")
	ErrInvalidAdjustment   = errors.New("adjustment must be add, remove or set")
	ErrInstallmentIndex    = errors.New("installment index out of range")
	ErrScheduleCancelled   = errors.New("schedule is cancelled")
	ErrVersionConflict     = errors.New("entity was modified concurrently, retry")
)
