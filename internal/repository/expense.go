package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ahorraya/savings-backend/internal/domain"
)

const expenseColumns = `id, user_id, original_amount, rounded_amount, savings_difference,
	description, category, merchant, status, occurred_at, created_at`

type ExpenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, tx *sql.Tx, e *domain.Expense) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO expenses (
			id, user_id, original_amount, rounded_amount, savings_difference,
			description, category, merchant, status, occurred_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		e.ID, e.UserID, e.OriginalAmount, e.RoundedAmount, e.SavingsDifference,
		e.Description, e.Category, e.Merchant, e.Status, e.OccurredAt, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Expense, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, id,
	)
	e, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return e, nil
}

func (r *ExpenseRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses
		WHERE user_id = $1 ORDER BY occurred_at DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("GetByUserID: %w", err)
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("GetByUserID: scan: %w", err)
		}
		expenses = append(expenses, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetByUserID: rows: %w", err)
	}
	return expenses, nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete: rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanExpense(s scanner) (*domain.Expense, error) {
	var e domain.Expense
	err := s.Scan(
		&e.ID, &e.UserID, &e.OriginalAmount, &e.RoundedAmount, &e.SavingsDifference,
		&e.Description, &e.Category, &e.Merchant, &e.Status, &e.OccurredAt, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
