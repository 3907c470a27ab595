package domain

import "errors"

var (
	ErrNotFound              = errors.New("not found")
	ErrInvalidAmount         = errors.New("amount must be greater than zero")
	ErrInvalidRequest        = errors.New("invalid request")
	ErrInvalidCategory       = errors.New("invalid expense category")
	ErrAccountInactive       = errors.New("account is not active")
	ErrAccountDeleted        = errors.New("account already deleted")
	ErrAccountExists         = errors.New("user already has an active account")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrBalanceNotZero        = errors.New("account balance must be zero to close")
	ErrMovementNotPending    = errors.New("only pending movements can be applied")
	ErrMovementNotCompleted  = errors.New("only completed movements can be reverted")
	ErrMovementHasNoAccount  = errors.New("movement requires an account")
	ErrConfigAlreadyActive   = errors.New("savings config is already active")
	ErrConfigAlreadyInactive = errors.New("savings config is already inactive")
	ErrEmailExists           = errors.New("email already registered")
	ErrUsernameExists        = errors.New("username already registered")
	ErrVersionConflict       = errors.New("optimistic lock conflict")
)
