package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ahorraya/savings-backend/internal/domain"
	"github.com/ahorraya/savings-backend/internal/logging"
	"github.com/ahorraya/savings-backend/internal/money"
)

type ExpenseService struct {
	expenses  expenseRepository
	accounts  accountRepository
	movements movementRepository
	configs   configRepository
	users     userRepository
	db        txBeginner
}

func NewExpenseService(expenses expenseRepository, accounts accountRepository, movements movementRepository, configs configRepository, users userRepository, db txBeginner) *ExpenseService {
	return &ExpenseService{
		expenses:  expenses,
		accounts:  accounts,
		movements: movements,
		configs:   configs,
		users:     users,
		db:        db,
	}
}

// RecordExpenseInput carries the raw expense submission. Category is the
// raw string as received; it is parsed during validation.
type RecordExpenseInput struct {
	UserID      uuid.UUID
	Amount      decimal.Decimal
	Description string
	Category    string
	Merchant    string
}

// RecordExpenseResult bundles the persisted expense with the savings
// movement it produced, if any. Movement is nil when the rounding policy
// saved nothing.
type RecordExpenseResult struct {
	Expense  *domain.Expense
	Movement *domain.Movement
}

// RecordExpense runs the full round-up flow: normalize and round the
// amount against the user's savings configuration, persist the expense,
// and when the difference is positive credit it to the user's account as a
// savings movement. The expense, account mutation and movement commit in
// one transaction; any failure rolls back all of them.
//
// A user without a live account gets one opened implicitly inside the same
// transaction before the credit is applied.
func (s *ExpenseService) RecordExpense(ctx context.Context, in RecordExpenseInput) (*RecordExpenseResult, error) {
	log := logging.FromContext(ctx)

	if !money.IsPositive(in.Amount) {
		return nil, fmt.Errorf("RecordExpense: %w", domain.ErrInvalidAmount)
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("RecordExpense: blank description: %w", domain.ErrInvalidRequest)
	}
	if strings.TrimSpace(in.Merchant) == "" {
		return nil, fmt.Errorf("RecordExpense: blank merchant: %w", domain.ErrInvalidRequest)
	}
	category, err := domain.ParseCategory(in.Category)
	if err != nil {
		return nil, fmt.Errorf("RecordExpense: %w", err)
	}

	if _, err := s.users.GetByID(ctx, in.UserID); err != nil {
		return nil, fmt.Errorf("RecordExpense: %w", err)
	}

	cfg, err := s.configs.GetActiveByUserID(ctx, in.UserID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("RecordExpense: %w", err)
	}

	expense := domain.NewExpense(in.UserID, in.Amount, in.Description, category, in.Merchant)
	expense.ApplyRounding(cfg)
	expense.MarkProcessed()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("RecordExpense: begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := s.expenses.Create(ctx, tx, expense); err != nil {
		return nil, fmt.Errorf("RecordExpense: %w", err)
	}

	result := &RecordExpenseResult{Expense: expense}

	if money.IsPositive(expense.SavingsDifference) {
		account, err := s.ensureAccount(ctx, tx, in.UserID)
		if err != nil {
			return nil, fmt.Errorf("RecordExpense: %w", err)
		}

		movement, err := domain.NewMovement(
			account.ID,
			&expense.ID,
			in.UserID,
			expense.SavingsDifference,
			domain.MovementKindCredit,
			"Purchase savings at "+expense.Merchant,
		)
		if err != nil {
			return nil, fmt.Errorf("RecordExpense: %w", err)
		}
		if err := movement.Apply(account); err != nil {
			return nil, fmt.Errorf("RecordExpense: %w", err)
		}
		if err := s.movements.Create(ctx, tx, movement); err != nil {
			return nil, fmt.Errorf("RecordExpense: %w", err)
		}
		if err := s.accounts.Update(ctx, tx, account); err != nil {
			return nil, fmt.Errorf("RecordExpense: %w", err)
		}
		result.Movement = movement
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("RecordExpense: commit: %w", err)
	}

	fields := []any{
		"expense_id", expense.ID,
		"user_id", in.UserID,
		"original_amount", expense.OriginalAmount,
		"rounded_amount", expense.RoundedAmount,
		"savings_difference", expense.SavingsDifference,
	}
	if result.Movement != nil {
		fields = append(fields, "movement_id", result.Movement.ID)
	}
	log.Info("expense recorded", fields...)

	return result, nil
}

// ensureAccount returns the user's live account locked for update, opening
// a fresh one inside tx when none exists.
func (s *ExpenseService) ensureAccount(ctx context.Context, tx *sql.Tx, userID uuid.UUID) (*domain.Account, error) {
	account, err := s.accounts.GetForUpdateByUserID(ctx, tx, userID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	number, err := generateAccountNumber()
	if err != nil {
		return nil, err
	}
	account = domain.NewAccount(userID, number)
	if err := s.accounts.Create(ctx, tx, account); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("savings account created implicitly",
		"account_id", account.ID,
		"user_id", userID,
	)
	return account, nil
}

func (s *ExpenseService) GetByID(ctx context.Context, expenseID uuid.UUID) (*domain.Expense, error) {
	expense, err := s.expenses.GetByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return expense, nil
}

func (s *ExpenseService) GetAllByUser(ctx context.Context, userID uuid.UUID) ([]domain.Expense, error) {
	expenses, err := s.expenses.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("GetAllByUser: %w", err)
	}
	return expenses, nil
}

// Delete removes an expense record. Any movement the expense produced
// keeps its effect on the account; only the foreign reference is cleared.
func (s *ExpenseService) Delete(ctx context.Context, expenseID uuid.UUID) error {
	if err := s.expenses.Delete(ctx, expenseID); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}
