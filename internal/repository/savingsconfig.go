package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ahorraya/savings-backend/internal/domain"
)

const configColumns = `id, user_id, active, version, created_at`

type SavingsConfigRepository struct {
	db *sql.DB
}

func NewSavingsConfigRepository(db *sql.DB) *SavingsConfigRepository {
	return &SavingsConfigRepository{db: db}
}

func (r *SavingsConfigRepository) Create(ctx context.Context, c *domain.SavingsConfig) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO savings_configs (id, user_id, active, version, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.UserID, c.Active, c.Version, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (r *SavingsConfigRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SavingsConfig, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+configColumns+` FROM savings_configs WHERE id = $1`, id,
	)
	c, err := scanConfig(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return c, nil
}

func (r *SavingsConfigRepository) GetActiveByUserID(ctx context.Context, userID uuid.UUID) (*domain.SavingsConfig, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+configColumns+` FROM savings_configs
		WHERE user_id = $1 AND active = TRUE`, userID,
	)
	c, err := scanConfig(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetActiveByUserID: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetActiveByUserID: %w", err)
	}
	return c, nil
}

func (r *SavingsConfigRepository) ExistsActiveByUserID(ctx context.Context, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM savings_configs WHERE user_id = $1 AND active = TRUE)`,
		userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ExistsActiveByUserID: %w", err)
	}
	return exists, nil
}

func (r *SavingsConfigRepository) Update(ctx context.Context, c *domain.SavingsConfig) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE savings_configs SET active = $1, version = $2 WHERE id = $3`,
		c.Active, c.Version, c.ID,
	)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Update: rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("Update: %w", domain.ErrNotFound)
	}
	return nil
}

func scanConfig(s scanner) (*domain.SavingsConfig, error) {
	var c domain.SavingsConfig
	err := s.Scan(&c.ID, &c.UserID, &c.Active, &c.Version, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
