package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ahorraya/savings-backend/internal/money"
)

type MovementKind string

const (
	MovementKindCredit MovementKind = "credit"
	MovementKindDebit  MovementKind = "debit"
)

type MovementStatus string

const (
	MovementStatusPending   MovementStatus = "pending"
	MovementStatusCompleted MovementStatus = "completed"
	MovementStatusReverted  MovementStatus = "reverted"
	// Reserved statuses carried by the schema but never produced by the
	// apply/revert flow.
	MovementStatusProcessed MovementStatus = "processed"
	MovementStatusFailed    MovementStatus = "failed"
)

// Movement is a single ledger entry against one account. Amount, kind and
// the account reference are immutable after creation. The lifecycle is
// pending → completed → reverted; reverted is terminal.
type Movement struct {
	ID              uuid.UUID
	AccountID       uuid.UUID
	ExpenseID       *uuid.UUID
	UserID          uuid.UUID
	Amount          decimal.Decimal
	Kind            MovementKind
	Description     string
	PreviousBalance decimal.Decimal
	NewBalance      decimal.Decimal
	Status          MovementStatus
	OccurredAt      time.Time
	CreatedAt       time.Time
}

// NewMovement builds a pending movement of amount against accountID.
// expenseID is nil for movements not originated by an expense.
func NewMovement(accountID uuid.UUID, expenseID *uuid.UUID, userID uuid.UUID, amount decimal.Decimal, kind MovementKind, description string) (*Movement, error) {
	if !money.IsPositive(amount) {
		return nil, ErrInvalidAmount
	}

	now := time.Now().UTC()
	return &Movement{
		ID:              uuid.New(),
		AccountID:       accountID,
		ExpenseID:       expenseID,
		UserID:          userID,
		Amount:          money.Normalize(amount),
		Kind:            kind,
		Description:     description,
		PreviousBalance: money.Zero(),
		NewBalance:      money.Zero(),
		Status:          MovementStatusPending,
		OccurredAt:      now,
		CreatedAt:       now,
	}, nil
}

// Apply runs the movement against account: credit movements credit it,
// debit movements debit it. Balance snapshots are taken immediately around
// the mutation. Only pending movements can be applied; account-level
// failures (inactive, insufficient funds) propagate unchanged and leave the
// movement pending.
func (m *Movement) Apply(account *Account) error {
	if account == nil {
		return ErrMovementHasNoAccount
	}
	if m.Status != MovementStatusPending {
		return ErrMovementNotPending
	}

	m.PreviousBalance = money.Normalize(account.Balance)

	var err error
	switch m.Kind {
	case MovementKindCredit:
		err = account.Credit(m.Amount)
	case MovementKindDebit:
		err = account.Debit(m.Amount)
	default:
		return ErrInvalidRequest
	}
	if err != nil {
		return err
	}

	m.NewBalance = money.Normalize(account.Balance)
	m.OccurredAt = time.Now().UTC()
	m.Status = MovementStatusCompleted
	return nil
}

// Revert undoes a completed movement by running the inverse ledger
// primitive: a credit is reverted with a debit and a debit with a credit.
// Going through Credit/Debit means a reversal revalidates account state and
// funds, so reverting a credit whose funds were since spent fails with
// ErrInsufficientBalance instead of driving the balance negative.
func (m *Movement) Revert(account *Account) error {
	if account == nil {
		return ErrMovementHasNoAccount
	}
	if m.Status != MovementStatusCompleted {
		return ErrMovementNotCompleted
	}

	m.PreviousBalance = money.Normalize(account.Balance)

	var err error
	switch m.Kind {
	case MovementKindCredit:
		err = account.Debit(m.Amount)
	case MovementKindDebit:
		err = account.Credit(m.Amount)
	default:
		return ErrInvalidRequest
	}
	if err != nil {
		return err
	}

	m.NewBalance = money.Normalize(account.Balance)
	m.OccurredAt = time.Now().UTC()
	m.Status = MovementStatusReverted
	return nil
}
