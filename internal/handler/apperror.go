package handler

import "net/http"

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrMissingToken       = &AppError{http.StatusUnauthorized, "MISSING_TOKEN", "Authorization header required"}
	ErrInvalidToken       = &AppError{http.StatusUnauthorized, "INVALID_TOKEN", "Token is invalid or expired"}
	ErrInvalidCredentials = &AppError{http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password"}
	ErrInvalidRequest     = &AppError{http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body"}
	ErrValidationFailed   = &AppError{http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed"}
	ErrResourceNotFound   = &AppError{http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found"}
	ErrInternalError      = &AppError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}

	ErrInvalidAmount         = &AppError{http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be greater than zero"}
	ErrInvalidCategory       = &AppError{http.StatusBadRequest, "INVALID_CATEGORY", "Unknown expense category"}
	ErrInsufficientBalance   = &AppError{http.StatusUnprocessableEntity, "INSUFFICIENT_BALANCE", "Insufficient balance"}
	ErrBalanceNotZero        = &AppError{http.StatusUnprocessableEntity, "BALANCE_NOT_ZERO", "Account balance must be zero before closing"}
	ErrAccountInactive       = &AppError{http.StatusUnprocessableEntity, "ACCOUNT_INACTIVE", "Account is not active"}
	ErrAccountDeleted        = &AppError{http.StatusUnprocessableEntity, "ACCOUNT_DELETED", "Account has been closed"}
	ErrAccountExists         = &AppError{http.StatusConflict, "ACCOUNT_ALREADY_EXISTS", "User already has a savings account"}
	ErrMovementNotPending    = &AppError{http.StatusUnprocessableEntity, "MOVEMENT_NOT_PENDING", "Movement has already been applied"}
	ErrMovementNotCompleted  = &AppError{http.StatusUnprocessableEntity, "MOVEMENT_NOT_COMPLETED", "Only completed movements can be reverted"}
	ErrConfigAlreadyActive   = &AppError{http.StatusConflict, "CONFIG_ALREADY_ACTIVE", "Savings configuration is already active"}
	ErrConfigAlreadyInactive = &AppError{http.StatusConflict, "CONFIG_ALREADY_INACTIVE", "Savings configuration is already inactive"}
	ErrEmailExists           = &AppError{http.StatusConflict, "EMAIL_ALREADY_EXISTS", "Email is already registered"}
	ErrUsernameExists        = &AppError{http.StatusConflict, "USERNAME_ALREADY_EXISTS", "Username is already taken"}
	ErrVersionConflict       = &AppError{http.StatusConflict, "VERSION_CONFLICT", "Resource was modified concurrently, please retry"}
)
