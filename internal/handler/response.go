package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ahorraya/savings-backend/internal/domain"
)

type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data"`
	Error   *APIError `json:"error"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func RespondSuccess(w http.ResponseWriter, status int, data any) {
	RespondJSON(w, status, APIResponse{
		Success: true,
		Data:    data,
		Error:   nil,
	})
}

func RespondAppError(w http.ResponseWriter, appErr *AppError, details any) {
	RespondJSON(w, appErr.Status, APIResponse{
		Success: false,
		Data:    nil,
		Error: &APIError{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: details,
		},
	})
}

func RespondValidationError(w http.ResponseWriter, fields []FieldError) {
	RespondAppError(w, ErrValidationFailed, fields)
}

// RespondDomainError maps domain sentinels onto their HTTP representation.
// Anything unmapped is logged and surfaced as an internal error.
func RespondDomainError(w http.ResponseWriter, err error) {
	var appErr *AppError

	switch {
	case errors.Is(err, domain.ErrNotFound):
		appErr = ErrResourceNotFound
	case errors.Is(err, domain.ErrInvalidAmount):
		appErr = ErrInvalidAmount
	case errors.Is(err, domain.ErrInvalidCategory):
		appErr = ErrInvalidCategory
	case errors.Is(err, domain.ErrInsufficientBalance):
		appErr = ErrInsufficientBalance
	case errors.Is(err, domain.ErrBalanceNotZero):
		appErr = ErrBalanceNotZero
	case errors.Is(err, domain.ErrAccountInactive):
		appErr = ErrAccountInactive
	case errors.Is(err, domain.ErrAccountDeleted):
		appErr = ErrAccountDeleted
	case errors.Is(err, domain.ErrAccountExists):
		appErr = ErrAccountExists
	case errors.Is(err, domain.ErrMovementNotPending):
		appErr = ErrMovementNotPending
	case errors.Is(err, domain.ErrMovementNotCompleted):
		appErr = ErrMovementNotCompleted
	case errors.Is(err, domain.ErrConfigAlreadyActive):
		appErr = ErrConfigAlreadyActive
	case errors.Is(err, domain.ErrConfigAlreadyInactive):
		appErr = ErrConfigAlreadyInactive
	case errors.Is(err, domain.ErrEmailExists):
		appErr = ErrEmailExists
	case errors.Is(err, domain.ErrUsernameExists):
		appErr = ErrUsernameExists
	case errors.Is(err, domain.ErrVersionConflict):
		appErr = ErrVersionConflict
	case errors.Is(err, domain.ErrInvalidRequest):
		appErr = ErrInvalidRequest
	default:
		slog.Error("unhandled domain error", "error", err)
		appErr = ErrInternalError
	}

	RespondAppError(w, appErr, nil)
}
