package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ahorraya/savings-backend/internal/domain"
	"github.com/ahorraya/savings-backend/internal/logging"
)

type AccountService struct {
	accounts  accountRepository
	movements movementRepository
	users     userRepository
	db        txBeginner
}

func NewAccountService(accounts accountRepository, movements movementRepository, users userRepository, db txBeginner) *AccountService {
	return &AccountService{accounts: accounts, movements: movements, users: users, db: db}
}

// AccountSummary is the read-only projection served to the transport layer.
// It is built from an unlocked snapshot; authoritative balances live behind
// the row lock.
type AccountSummary struct {
	AccountID              uuid.UUID
	AccountNumber          string
	Balance                decimal.Decimal
	TotalHistoricalSavings decimal.Decimal
	MovementCount          int64
	Status                 domain.AccountStatus
}

// CreateAccount opens a savings account for userID. A user holds at most
// one live account at a time.
func (s *AccountService) CreateAccount(ctx context.Context, userID uuid.UUID) (*domain.Account, error) {
	log := logging.FromContext(ctx)

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("CreateAccount: %w", err)
	}

	exists, err := s.accounts.ExistsActiveByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("CreateAccount: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("CreateAccount: %w", domain.ErrAccountExists)
	}

	number, err := generateAccountNumber()
	if err != nil {
		return nil, fmt.Errorf("CreateAccount: %w", err)
	}
	account := domain.NewAccount(userID, number)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("CreateAccount: begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := s.accounts.Create(ctx, tx, account); err != nil {
		return nil, fmt.Errorf("CreateAccount: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("CreateAccount: commit: %w", err)
	}

	log.Info("savings account created",
		"account_id", account.ID,
		"account_number", account.AccountNumber,
		"user_id", userID,
	)

	return account, nil
}

// CloseAccount soft-deletes an account. Only a zero-balance account may be
// closed; the error for a non-zero balance carries the current amount.
func (s *AccountService) CloseAccount(ctx context.Context, accountID uuid.UUID) error {
	log := logging.FromContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("CloseAccount: begin tx: %w", err)
	}
	defer tx.Rollback()

	account, err := s.accounts.GetForUpdate(ctx, tx, accountID)
	if err != nil {
		return fmt.Errorf("CloseAccount: %w", err)
	}
	if account.Deleted {
		return fmt.Errorf("CloseAccount: %w", domain.ErrAccountDeleted)
	}
	if !account.Balance.IsZero() {
		return fmt.Errorf("CloseAccount: current balance %s: %w", account.Balance, domain.ErrBalanceNotZero)
	}

	account.MarkDeleted()
	if err := s.accounts.Update(ctx, tx, account); err != nil {
		return fmt.Errorf("CloseAccount: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("CloseAccount: commit: %w", err)
	}

	log.Info("savings account closed", "account_id", accountID, "account_number", account.AccountNumber)
	return nil
}

// GetByID returns a non-deleted account. Soft-deleted accounts surface as
// not found.
func (s *AccountService) GetByID(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	if account.Deleted {
		return nil, fmt.Errorf("GetByID: %w", domain.ErrNotFound)
	}
	return account, nil
}

func (s *AccountService) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Account, error) {
	account, err := s.accounts.GetActiveByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("GetByUserID: %w", err)
	}
	return account, nil
}

func (s *AccountService) GetByAccountNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	account, err := s.accounts.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		return nil, fmt.Errorf("GetByAccountNumber: %w", err)
	}
	return account, nil
}

// Summary returns the unlocked snapshot of a user's active account.
func (s *AccountService) Summary(ctx context.Context, userID uuid.UUID) (*AccountSummary, error) {
	account, err := s.accounts.GetActiveByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("Summary: %w", err)
	}

	count, err := s.movements.CountByAccountID(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("Summary: %w", err)
	}

	return &AccountSummary{
		AccountID:              account.ID,
		AccountNumber:          account.AccountNumber,
		Balance:                account.Balance,
		TotalHistoricalSavings: account.TotalHistoricalSavings,
		MovementCount:          count,
		Status:                 account.Status,
	}, nil
}

var errAccountNumber = errors.New("generate account number")

// generateAccountNumber produces an "SA" prefixed 13-digit number.
func generateAccountNumber() (string, error) {
	digits := make([]byte, 13)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("%w: %v", errAccountNumber, err)
		}
		digits[i] = '0' + byte(n.Int64())
	}
	return "SA" + string(digits), nil
}
