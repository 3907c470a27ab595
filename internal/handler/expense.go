package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ahorraya/savings-backend/internal/domain"
	"github.com/ahorraya/savings-backend/internal/logging"
	"github.com/ahorraya/savings-backend/internal/service"
)

type expenseService interface {
	RecordExpense(ctx context.Context, in service.RecordExpenseInput) (*service.RecordExpenseResult, error)
	GetByID(ctx context.Context, expenseID uuid.UUID) (*domain.Expense, error)
	GetAllByUser(ctx context.Context, userID uuid.UUID) ([]domain.Expense, error)
	Delete(ctx context.Context, expenseID uuid.UUID) error
}

type ExpenseHandler struct {
	expenses expenseService
}

func NewExpenseHandler(expenses expenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

type recordExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Merchant    string          `json:"merchant"`
}

func (r recordExpenseRequest) Validate() []FieldError {
	var errs []FieldError
	if !r.Amount.IsPositive() {
		errs = append(errs, FieldError{Field: "amount", Message: "must be greater than 0"})
	}
	if strings.TrimSpace(r.Description) == "" {
		errs = append(errs, FieldError{Field: "description", Message: "required"})
	}
	if r.Category == "" {
		errs = append(errs, FieldError{Field: "category", Message: "required"})
	} else if _, err := domain.ParseCategory(r.Category); err != nil {
		errs = append(errs, FieldError{Field: "category", Message: "unknown category"})
	}
	if r.Merchant == "" {
		errs = append(errs, FieldError{Field: "merchant", Message: "required"})
	}
	return errs
}

type expenseDTO struct {
	ID                uuid.UUID       `json:"id"`
	UserID            uuid.UUID       `json:"user_id"`
	OriginalAmount    decimal.Decimal `json:"original_amount"`
	RoundedAmount     decimal.Decimal `json:"rounded_amount"`
	SavingsDifference decimal.Decimal `json:"savings_difference"`
	Description       string          `json:"description"`
	Category          string          `json:"category"`
	Merchant          string          `json:"merchant"`
	Status            string          `json:"status"`
	OccurredAt        time.Time       `json:"occurred_at"`
	CreatedAt         time.Time       `json:"created_at"`
}

func toExpenseDTO(e *domain.Expense) expenseDTO {
	return expenseDTO{
		ID:                e.ID,
		UserID:            e.UserID,
		OriginalAmount:    e.OriginalAmount,
		RoundedAmount:     e.RoundedAmount,
		SavingsDifference: e.SavingsDifference,
		Description:       e.Description,
		Category:          string(e.Category),
		Merchant:          e.Merchant,
		Status:            string(e.Status),
		OccurredAt:        e.OccurredAt,
		CreatedAt:         e.CreatedAt,
	}
}

type recordExpenseResponse struct {
	Expense  expenseDTO   `json:"expense"`
	Movement *movementDTO `json:"movement,omitempty"`
}

func (h *ExpenseHandler) Record(w http.ResponseWriter, r *http.Request) {
	userID, appErr := ownerFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req recordExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	result, err := h.expenses.RecordExpense(r.Context(), service.RecordExpenseInput{
		UserID:      userID,
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
		Merchant:    req.Merchant,
	})
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to record expense", "error", err)
		RespondDomainError(w, err)
		return
	}

	resp := recordExpenseResponse{Expense: toExpenseDTO(result.Expense)}
	if result.Movement != nil {
		dto := toMovementDTO(result.Movement)
		resp.Movement = &dto
	}

	RespondSuccess(w, http.StatusCreated, resp)
}

func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, appErr := ownerFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	expenses, err := h.expenses.GetAllByUser(r.Context(), userID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	dtos := make([]expenseDTO, len(expenses))
	for i := range expenses {
		dtos[i] = toExpenseDTO(&expenses[i])
	}

	RespondSuccess(w, http.StatusOK, dtos)
}

func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	expense, appErr := h.ownedExpense(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	RespondSuccess(w, http.StatusOK, toExpenseDTO(expense))
}

func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	expense, appErr := h.ownedExpense(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	if err := h.expenses.Delete(r.Context(), expense.ID); err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, map[string]any{
		"expense_id": expense.ID,
		"deleted":    true,
	})
}

// ownedExpense resolves the expense in the path and checks it belongs to
// the authenticated user. Foreign expenses surface as not found.
func (h *ExpenseHandler) ownedExpense(r *http.Request) (*domain.Expense, *AppError) {
	userID, appErr := ownerFromPath(r)
	if appErr != nil {
		return nil, appErr
	}

	expenseID, err := uuid.Parse(r.PathValue("expenseID"))
	if err != nil {
		return nil, ErrResourceNotFound
	}

	expense, svcErr := h.expenses.GetByID(r.Context(), expenseID)
	if svcErr != nil {
		return nil, ErrResourceNotFound
	}
	if expense.UserID != userID {
		return nil, ErrResourceNotFound
	}
	return expense, nil
}
