package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/ahorraya/savings-backend/internal/domain"
)

type userRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type accountRepository interface {
	Create(ctx context.Context, tx *sql.Tx, a *domain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetActiveByUserID(ctx context.Context, userID uuid.UUID) (*domain.Account, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (*domain.Account, error)
	ExistsActiveByUserID(ctx context.Context, userID uuid.UUID) (bool, error)
	GetForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*domain.Account, error)
	GetForUpdateByUserID(ctx context.Context, tx *sql.Tx, userID uuid.UUID) (*domain.Account, error)
	Update(ctx context.Context, tx *sql.Tx, a *domain.Account) error
}

type movementRepository interface {
	Create(ctx context.Context, tx *sql.Tx, m *domain.Movement) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Movement, error)
	GetForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*domain.Movement, error)
	UpdateState(ctx context.Context, tx *sql.Tx, m *domain.Movement) error
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Movement, error)
	GetByAccountID(ctx context.Context, accountID uuid.UUID) ([]domain.Movement, error)
	GetByExpenseID(ctx context.Context, expenseID uuid.UUID) ([]domain.Movement, error)
	CountByAccountID(ctx context.Context, accountID uuid.UUID) (int64, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}

type expenseRepository interface {
	Create(ctx context.Context, tx *sql.Tx, e *domain.Expense) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Expense, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Expense, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type configRepository interface {
	Create(ctx context.Context, c *domain.SavingsConfig) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SavingsConfig, error)
	GetActiveByUserID(ctx context.Context, userID uuid.UUID) (*domain.SavingsConfig, error)
	ExistsActiveByUserID(ctx context.Context, userID uuid.UUID) (bool, error)
	Update(ctx context.Context, c *domain.SavingsConfig) error
}

type txBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}
