package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ahorraya/savings-backend/internal/domain"
)

const movementColumns = `id, account_id, expense_id, user_id, amount, kind, description,
	previous_balance, new_balance, status, occurred_at, created_at`

type MovementRepository struct {
	db *sql.DB
}

func NewMovementRepository(db *sql.DB) *MovementRepository {
	return &MovementRepository{db: db}
}

func (r *MovementRepository) Create(ctx context.Context, tx *sql.Tx, m *domain.Movement) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO saving_movements (
			id, account_id, expense_id, user_id, amount, kind, description,
			previous_balance, new_balance, status, occurred_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		m.ID, m.AccountID, m.ExpenseID, m.UserID, m.Amount, m.Kind, m.Description,
		m.PreviousBalance, m.NewBalance, m.Status, m.OccurredAt, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (r *MovementRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Movement, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+movementColumns+` FROM saving_movements WHERE id = $1`, id,
	)
	m, err := scanMovement(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return m, nil
}

// GetForUpdate re-reads a movement under a row lock so a state transition
// decided inside a transaction cannot race another transition of the same
// movement.
func (r *MovementRepository) GetForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*domain.Movement, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT `+movementColumns+` FROM saving_movements WHERE id = $1 FOR UPDATE`, id,
	)
	m, err := scanMovement(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetForUpdate: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetForUpdate: %w", err)
	}
	return m, nil
}

// UpdateState persists the fields a state transition touches: status,
// balance snapshots and the transition timestamp. Everything else on a
// movement is immutable after creation.
func (r *MovementRepository) UpdateState(ctx context.Context, tx *sql.Tx, m *domain.Movement) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE saving_movements
		SET status = $1, previous_balance = $2, new_balance = $3, occurred_at = $4
		WHERE id = $5`,
		m.Status, m.PreviousBalance, m.NewBalance, m.OccurredAt, m.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateState: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("UpdateState: rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("UpdateState: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *MovementRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Movement, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+movementColumns+` FROM saving_movements
		WHERE user_id = $1 ORDER BY occurred_at DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("GetByUserID: %w", err)
	}
	defer rows.Close()

	var movements []domain.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("GetByUserID: scan: %w", err)
		}
		movements = append(movements, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetByUserID: rows: %w", err)
	}
	return movements, nil
}

func (r *MovementRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID) ([]domain.Movement, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+movementColumns+` FROM saving_movements
		WHERE account_id = $1 ORDER BY occurred_at DESC`, accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("GetByAccountID: %w", err)
	}
	defer rows.Close()

	var movements []domain.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("GetByAccountID: scan: %w", err)
		}
		movements = append(movements, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetByAccountID: rows: %w", err)
	}
	return movements, nil
}

func (r *MovementRepository) GetByExpenseID(ctx context.Context, expenseID uuid.UUID) ([]domain.Movement, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+movementColumns+` FROM saving_movements
		WHERE expense_id = $1 ORDER BY occurred_at`, expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("GetByExpenseID: %w", err)
	}
	defer rows.Close()

	var movements []domain.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("GetByExpenseID: scan: %w", err)
		}
		movements = append(movements, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetByExpenseID: rows: %w", err)
	}
	return movements, nil
}

func (r *MovementRepository) CountByAccountID(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM saving_movements WHERE account_id = $1`, accountID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("CountByAccountID: %w", err)
	}
	return count, nil
}

func (r *MovementRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM saving_movements WHERE user_id = $1`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("CountByUserID: %w", err)
	}
	return count, nil
}

func scanMovement(s scanner) (*domain.Movement, error) {
	var m domain.Movement
	err := s.Scan(
		&m.ID, &m.AccountID, &m.ExpenseID, &m.UserID, &m.Amount, &m.Kind,
		&m.Description, &m.PreviousBalance, &m.NewBalance, &m.Status,
		&m.OccurredAt, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
