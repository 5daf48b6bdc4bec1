package entity

import "errors"

// Domain errors. Business outcomes are returned as values and matched with
// errors.Is; only infrastructure failures are wrapped and propagated.
var (
	ErrInsufficientFunds      = errors.New("insufficient balance")
	ErrBelowMinimum           = errors.New("amount below minimum withdrawal")
	ErrInvalidStateTransition = errors.New("invalid transaction status transition")
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrSelfPayment            = errors.New("cannot pay your own account")
	ErrAccountNotFound        = errors.New("account not found")
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrEntitlementNotFound    = errors.New("entitlement not found")
	ErrTargetNotFound         = errors.New("target not found")
)
