package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ahorraya/savings-backend/internal/domain"
	"github.com/ahorraya/savings-backend/internal/logging"
)

type movementService interface {
	CreateCreditMovement(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, description string) (*domain.Movement, error)
	CreateDebitMovement(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, description string) (*domain.Movement, error)
	RevertMovement(ctx context.Context, movementID uuid.UUID) (*domain.Movement, error)
	GetByID(ctx context.Context, movementID uuid.UUID) (*domain.Movement, error)
	GetAllByUser(ctx context.Context, userID uuid.UUID) ([]domain.Movement, error)
}

type accountResolver interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Account, error)
}

type MovementHandler struct {
	movements movementService
	accounts  accountResolver
}

func NewMovementHandler(movements movementService, accounts accountResolver) *MovementHandler {
	return &MovementHandler{movements: movements, accounts: accounts}
}

type createMovementRequest struct {
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

func (r createMovementRequest) Validate() []FieldError {
	var errs []FieldError
	switch domain.MovementKind(r.Kind) {
	case domain.MovementKindCredit, domain.MovementKindDebit:
	default:
		errs = append(errs, FieldError{Field: "kind", Message: "must be credit or debit"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, FieldError{Field: "amount", Message: "must be greater than 0"})
	}
	return errs
}

type movementDTO struct {
	ID              uuid.UUID       `json:"id"`
	AccountID       uuid.UUID       `json:"account_id"`
	ExpenseID       *uuid.UUID      `json:"expense_id"`
	Amount          decimal.Decimal `json:"amount"`
	Kind            string          `json:"kind"`
	Description     string          `json:"description"`
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	NewBalance      decimal.Decimal `json:"new_balance"`
	Status          string          `json:"status"`
	OccurredAt      time.Time       `json:"occurred_at"`
}

func toMovementDTO(m *domain.Movement) movementDTO {
	return movementDTO{
		ID:              m.ID,
		AccountID:       m.AccountID,
		ExpenseID:       m.ExpenseID,
		Amount:          m.Amount,
		Kind:            string(m.Kind),
		Description:     m.Description,
		PreviousBalance: m.PreviousBalance,
		NewBalance:      m.NewBalance,
		Status:          string(m.Status),
		OccurredAt:      m.OccurredAt,
	}
}

func (h *MovementHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, appErr := ownerFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req createMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	account, err := h.accounts.GetByUserID(r.Context(), userID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	var movement *domain.Movement
	switch domain.MovementKind(req.Kind) {
	case domain.MovementKindCredit:
		movement, err = h.movements.CreateCreditMovement(r.Context(), account.ID, req.Amount, req.Description)
	default:
		movement, err = h.movements.CreateDebitMovement(r.Context(), account.ID, req.Amount, req.Description)
	}
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to create movement", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toMovementDTO(movement))
}

func (h *MovementHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, appErr := ownerFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	movements, err := h.movements.GetAllByUser(r.Context(), userID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	dtos := make([]movementDTO, len(movements))
	for i := range movements {
		dtos[i] = toMovementDTO(&movements[i])
	}

	RespondSuccess(w, http.StatusOK, dtos)
}

func (h *MovementHandler) Get(w http.ResponseWriter, r *http.Request) {
	movement, appErr := h.ownedMovement(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	RespondSuccess(w, http.StatusOK, toMovementDTO(movement))
}

func (h *MovementHandler) Revert(w http.ResponseWriter, r *http.Request) {
	movement, appErr := h.ownedMovement(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	reverted, err := h.movements.RevertMovement(r.Context(), movement.ID)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to revert movement", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toMovementDTO(reverted))
}

func (h *MovementHandler) ownedMovement(r *http.Request) (*domain.Movement, *AppError) {
	userID, appErr := ownerFromPath(r)
	if appErr != nil {
		return nil, appErr
	}

	movementID, err := uuid.Parse(r.PathValue("movementID"))
	if err != nil {
		return nil, ErrResourceNotFound
	}

	movement, svcErr := h.movements.GetByID(r.Context(), movementID)
	if svcErr != nil {
		return nil, ErrResourceNotFound
	}
	if movement.UserID != userID {
		return nil, ErrResourceNotFound
	}
	return movement, nil
}
