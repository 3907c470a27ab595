package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ahorraya/savings-backend/internal/money"
)

type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "active"
	AccountStatusInactive AccountStatus = "inactive"
	AccountStatusBlocked  AccountStatus = "blocked"
)

// Account is the savings ledger for one user. Balance and
// TotalHistoricalSavings change only through Credit, Debit and MarkDeleted;
// no other code mutates them. Version backs the optimistic check on every
// persisted write.
type Account struct {
	ID                     uuid.UUID
	UserID                 uuid.UUID
	AccountNumber          string
	Balance                decimal.Decimal
	TotalHistoricalSavings decimal.Decimal
	Status                 AccountStatus
	Deleted                bool
	LastMovementAt         time.Time
	Version                int64
	CreatedAt              time.Time
}

// NewAccount returns an active account with zero balances for userID.
func NewAccount(userID uuid.UUID, accountNumber string) *Account {
	now := time.Now().UTC()
	return &Account{
		ID:                     uuid.New(),
		UserID:                 userID,
		AccountNumber:          accountNumber,
		Balance:                money.Zero(),
		TotalHistoricalSavings: money.Zero(),
		Status:                 AccountStatusActive,
		LastMovementAt:         now,
		Version:                1,
		CreatedAt:              now,
	}
}

// Credit adds amount to the balance and to the historical savings total.
// The account must be active and the amount strictly positive.
func (a *Account) Credit(amount decimal.Decimal) error {
	if !money.IsPositive(amount) {
		return ErrInvalidAmount
	}
	if a.Status != AccountStatusActive {
		return ErrAccountInactive
	}

	a.Balance = money.Normalize(a.Balance.Add(amount))
	a.TotalHistoricalSavings = money.Normalize(a.TotalHistoricalSavings.Add(amount))
	a.LastMovementAt = time.Now().UTC()
	return nil
}

// Debit subtracts amount from the balance. The historical savings total is
// untouched: it only ever grows, on credits.
func (a *Account) Debit(amount decimal.Decimal) error {
	if !money.IsPositive(amount) {
		return ErrInvalidAmount
	}
	if a.Status != AccountStatusActive {
		return ErrAccountInactive
	}
	if a.Balance.LessThan(amount) {
		return ErrInsufficientBalance
	}

	a.Balance = money.Normalize(a.Balance.Sub(amount))
	a.LastMovementAt = time.Now().UTC()
	return nil
}

// MarkDeleted soft-deletes the account. Callers enforce the zero-balance
// precondition before closing.
func (a *Account) MarkDeleted() {
	a.Deleted = true
	a.Status = AccountStatusInactive
}
