package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ahorraya/savings-backend/internal/domain"
	"github.com/ahorraya/savings-backend/internal/logging"
)

type MovementService struct {
	accounts  accountRepository
	movements movementRepository
	db        txBeginner
}

func NewMovementService(accounts accountRepository, movements movementRepository, db txBeginner) *MovementService {
	return &MovementService{accounts: accounts, movements: movements, db: db}
}

// CreateCreditMovement deposits amount into accountID. The movement, its
// balance snapshots and the account mutation commit atomically.
func (s *MovementService) CreateCreditMovement(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, description string) (*domain.Movement, error) {
	m, err := s.applyMovement(ctx, accountID, nil, amount, domain.MovementKindCredit, description)
	if err != nil {
		return nil, fmt.Errorf("CreateCreditMovement: %w", err)
	}
	return m, nil
}

// CreateDebitMovement withdraws amount from accountID.
func (s *MovementService) CreateDebitMovement(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, description string) (*domain.Movement, error) {
	m, err := s.applyMovement(ctx, accountID, nil, amount, domain.MovementKindDebit, description)
	if err != nil {
		return nil, fmt.Errorf("CreateDebitMovement: %w", err)
	}
	return m, nil
}

func (s *MovementService) applyMovement(ctx context.Context, accountID uuid.UUID, expenseID *uuid.UUID, amount decimal.Decimal, kind domain.MovementKind, description string) (*domain.Movement, error) {
	log := logging.FromContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	account, err := s.accounts.GetForUpdate(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}
	if account.Deleted {
		return nil, domain.ErrAccountDeleted
	}

	movement, err := domain.NewMovement(accountID, expenseID, account.UserID, amount, kind, description)
	if err != nil {
		return nil, err
	}
	if err := movement.Apply(account); err != nil {
		return nil, err
	}

	if err := s.movements.Create(ctx, tx, movement); err != nil {
		return nil, err
	}
	if err := s.accounts.Update(ctx, tx, account); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	log.Info("movement applied",
		"movement_id", movement.ID,
		"account_id", accountID,
		"kind", kind,
		"amount", movement.Amount,
		"new_balance", movement.NewBalance,
	)

	return movement, nil
}

// RevertMovement undoes a completed movement by applying the inverse ledger
// primitive. The movement row is locked before re-checking its status so
// two concurrent reverts of the same movement cannot both apply.
func (s *MovementService) RevertMovement(ctx context.Context, movementID uuid.UUID) (*domain.Movement, error) {
	log := logging.FromContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("RevertMovement: begin tx: %w", err)
	}
	defer tx.Rollback()

	movement, err := s.movements.GetForUpdate(ctx, tx, movementID)
	if err != nil {
		return nil, fmt.Errorf("RevertMovement: %w", err)
	}

	account, err := s.accounts.GetForUpdate(ctx, tx, movement.AccountID)
	if err != nil {
		return nil, fmt.Errorf("RevertMovement: %w", err)
	}

	if err := movement.Revert(account); err != nil {
		return nil, fmt.Errorf("RevertMovement: %w", err)
	}

	if err := s.movements.UpdateState(ctx, tx, movement); err != nil {
		return nil, fmt.Errorf("RevertMovement: %w", err)
	}
	if err := s.accounts.Update(ctx, tx, account); err != nil {
		return nil, fmt.Errorf("RevertMovement: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("RevertMovement: commit: %w", err)
	}

	log.Info("movement reverted",
		"movement_id", movement.ID,
		"account_id", movement.AccountID,
		"kind", movement.Kind,
		"amount", movement.Amount,
		"new_balance", movement.NewBalance,
	)

	return movement, nil
}

func (s *MovementService) GetByID(ctx context.Context, movementID uuid.UUID) (*domain.Movement, error) {
	movement, err := s.movements.GetByID(ctx, movementID)
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return movement, nil
}

func (s *MovementService) GetAllByUser(ctx context.Context, userID uuid.UUID) ([]domain.Movement, error) {
	movements, err := s.movements.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("GetAllByUser: %w", err)
	}
	return movements, nil
}

func (s *MovementService) GetAllByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.Movement, error) {
	movements, err := s.movements.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("GetAllByAccount: %w", err)
	}
	return movements, nil
}

func (s *MovementService) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := s.movements.CountByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("CountByUser: %w", err)
	}
	return count, nil
}
