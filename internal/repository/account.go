package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ahorraya/savings-backend/internal/domain"
)

const accountColumns = `id, user_id, account_number, balance, total_historical_savings,
	status, is_deleted, last_movement_at, version, created_at`

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, tx *sql.Tx, a *domain.Account) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO saving_accounts (
			id, user_id, account_number, balance, total_historical_savings,
			status, is_deleted, last_movement_at, version, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID, a.UserID, a.AccountNumber, a.Balance, a.TotalHistoricalSavings,
		a.Status, a.Deleted, a.LastMovementAt, a.Version, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// GetByID returns the account row regardless of its deleted flag; callers
// that must distinguish "missing" from "soft-deleted" check Deleted.
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM saving_accounts WHERE id = $1`, id,
	)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return a, nil
}

func (r *AccountRepository) GetActiveByUserID(ctx context.Context, userID uuid.UUID) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM saving_accounts
		WHERE user_id = $1 AND status = $2 AND is_deleted = FALSE`,
		userID, domain.AccountStatusActive,
	)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetActiveByUserID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetActiveByUserID: %w", err)
	}
	return a, nil
}

func (r *AccountRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM saving_accounts
		WHERE account_number = $1 AND is_deleted = FALSE`, accountNumber,
	)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByAccountNumber: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByAccountNumber: %w", err)
	}
	return a, nil
}

func (r *AccountRepository) ExistsActiveByUserID(ctx context.Context, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM saving_accounts
			WHERE user_id = $1 AND status = $2 AND is_deleted = FALSE
		)`,
		userID, domain.AccountStatusActive,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ExistsActiveByUserID: %w", err)
	}
	return exists, nil
}

// GetForUpdate takes the row lock that serializes balance decisions for one
// account within the surrounding transaction.
func (r *AccountRepository) GetForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*domain.Account, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM saving_accounts WHERE id = $1 FOR UPDATE`, id,
	)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetForUpdate: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetForUpdate: %w", err)
	}
	return a, nil
}

// GetForUpdateByUserID locks the user's live account whatever its status;
// status checks belong to the credit/debit primitives so a blocked account
// surfaces as ErrAccountInactive, not as a missing row.
func (r *AccountRepository) GetForUpdateByUserID(ctx context.Context, tx *sql.Tx, userID uuid.UUID) (*domain.Account, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM saving_accounts
		WHERE user_id = $1 AND is_deleted = FALSE FOR UPDATE`,
		userID,
	)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetForUpdateByUserID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetForUpdateByUserID: %w", err)
	}
	return a, nil
}

// Update persists the mutable account state with a version check. The
// account's Version is bumped in place on success so the caller holds the
// persisted view.
func (r *AccountRepository) Update(ctx context.Context, tx *sql.Tx, a *domain.Account) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE saving_accounts
		SET balance = $1, total_historical_savings = $2, status = $3,
			is_deleted = $4, last_movement_at = $5, version = $6
		WHERE id = $7 AND version = $8`,
		a.Balance, a.TotalHistoricalSavings, a.Status,
		a.Deleted, a.LastMovementAt, a.Version+1,
		a.ID, a.Version,
	)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Update: rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("Update: %w", domain.ErrVersionConflict)
	}

	a.Version++
	return nil
}

func scanAccount(s scanner) (*domain.Account, error) {
	var a domain.Account
	err := s.Scan(
		&a.ID, &a.UserID, &a.AccountNumber, &a.Balance, &a.TotalHistoricalSavings,
		&a.Status, &a.Deleted, &a.LastMovementAt, &a.Version, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
