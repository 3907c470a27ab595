package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ahorraya/savings-backend/internal/domain"
	"github.com/ahorraya/savings-backend/internal/logging"
	"github.com/ahorraya/savings-backend/internal/service"
)

type accountService interface {
	CreateAccount(ctx context.Context, userID uuid.UUID) (*domain.Account, error)
	CloseAccount(ctx context.Context, accountID uuid.UUID) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Account, error)
	Summary(ctx context.Context, userID uuid.UUID) (*service.AccountSummary, error)
}

type AccountHandler struct {
	accounts accountService
}

func NewAccountHandler(accounts accountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type accountDTO struct {
	ID                     uuid.UUID       `json:"id"`
	UserID                 uuid.UUID       `json:"user_id"`
	AccountNumber          string          `json:"account_number"`
	Balance                decimal.Decimal `json:"balance"`
	TotalHistoricalSavings decimal.Decimal `json:"total_historical_savings"`
	Status                 string          `json:"status"`
	LastMovementAt         time.Time       `json:"last_movement_at"`
	CreatedAt              time.Time       `json:"created_at"`
}

func toAccountDTO(a *domain.Account) accountDTO {
	return accountDTO{
		ID:                     a.ID,
		UserID:                 a.UserID,
		AccountNumber:          a.AccountNumber,
		Balance:                a.Balance,
		TotalHistoricalSavings: a.TotalHistoricalSavings,
		Status:                 string(a.Status),
		LastMovementAt:         a.LastMovementAt,
		CreatedAt:              a.CreatedAt,
	}
}

type accountSummaryDTO struct {
	AccountID              uuid.UUID       `json:"account_id"`
	AccountNumber          string          `json:"account_number"`
	Balance                decimal.Decimal `json:"balance"`
	TotalHistoricalSavings decimal.Decimal `json:"total_historical_savings"`
	MovementCount          int64           `json:"movement_count"`
	Status                 string          `json:"status"`
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, appErr := ownerFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	account, err := h.accounts.CreateAccount(r.Context(), userID)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to create account", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toAccountDTO(account))
}

func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, appErr := ownerFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	account, err := h.accounts.GetByUserID(r.Context(), userID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toAccountDTO(account))
}

func (h *AccountHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, appErr := ownerFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	summary, err := h.accounts.Summary(r.Context(), userID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, accountSummaryDTO{
		AccountID:              summary.AccountID,
		AccountNumber:          summary.AccountNumber,
		Balance:                summary.Balance,
		TotalHistoricalSavings: summary.TotalHistoricalSavings,
		MovementCount:          summary.MovementCount,
		Status:                 string(summary.Status),
	})
}

func (h *AccountHandler) Close(w http.ResponseWriter, r *http.Request) {
	userID, appErr := ownerFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	account, err := h.accounts.GetByUserID(r.Context(), userID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	if err := h.accounts.CloseAccount(r.Context(), account.ID); err != nil {
		logging.FromContext(r.Context()).Error("failed to close account", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, map[string]any{
		"account_id": account.ID,
		"closed":     true,
	})
}
