package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ahorraya/savings-backend/internal/money"
)

type ExpenseStatus string

const (
	ExpenseStatusPending   ExpenseStatus = "pending"
	ExpenseStatusProcessed ExpenseStatus = "processed"
	ExpenseStatusRejected  ExpenseStatus = "rejected"
)

type ExpenseCategory string

const (
	CategoryFood           ExpenseCategory = "food"
	CategoryTransportation ExpenseCategory = "transportation"
	CategoryUtilities      ExpenseCategory = "utilities"
	CategoryEntertainment  ExpenseCategory = "entertainment"
	CategoryHealthcare     ExpenseCategory = "healthcare"
	CategoryEducation      ExpenseCategory = "education"
	CategoryPersonalCare   ExpenseCategory = "personal_care"
	CategoryOther          ExpenseCategory = "other"
)

func (c ExpenseCategory) IsValid() bool {
	switch c {
	case CategoryFood, CategoryTransportation, CategoryUtilities,
		CategoryEntertainment, CategoryHealthcare, CategoryEducation,
		CategoryPersonalCare, CategoryOther:
		return true
	default:
		return false
	}
}

// ParseCategory maps a raw category string to a known category,
// case-insensitively. Unknown values return ErrInvalidCategory.
func ParseCategory(s string) (ExpenseCategory, error) {
	c := ExpenseCategory(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// Expense records a purchase together with the outcome of the rounding
// policy. SavingsDifference is always recomputed as RoundedAmount minus
// OriginalAmount over normalized operands, never stored independently.
type Expense struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	OriginalAmount    decimal.Decimal
	RoundedAmount     decimal.Decimal
	SavingsDifference decimal.Decimal
	Description       string
	Category          ExpenseCategory
	Merchant          string
	Status            ExpenseStatus
	OccurredAt        time.Time
	CreatedAt         time.Time
}

// NewExpense builds a pending expense. The rounded amount starts equal to
// the original until ApplyRounding runs.
func NewExpense(userID uuid.UUID, originalAmount decimal.Decimal, description string, category ExpenseCategory, merchant string) *Expense {
	now := time.Now().UTC()
	e := &Expense{
		ID:             uuid.New(),
		UserID:         userID,
		OriginalAmount: money.Normalize(originalAmount),
		RoundedAmount:  money.Normalize(originalAmount),
		Description:    description,
		Category:       category,
		Merchant:       merchant,
		Status:         ExpenseStatusPending,
		OccurredAt:     now,
		CreatedAt:      now,
	}
	e.recalcSavingsDifference()
	return e
}

// ApplyRounding applies the round-up policy using cfg. A nil or inactive
// config leaves the amount unchanged and the savings difference at 0.00.
func (e *Expense) ApplyRounding(cfg *SavingsConfig) {
	active := cfg != nil && cfg.Active
	e.RoundedAmount, _ = money.RoundUp(e.OriginalAmount, active)
	e.recalcSavingsDifference()
}

func (e *Expense) MarkProcessed() {
	e.Status = ExpenseStatusProcessed
}

func (e *Expense) MarkRejected() {
	e.Status = ExpenseStatusRejected
}

func (e *Expense) recalcSavingsDifference() {
	e.SavingsDifference = money.Normalize(
		money.Normalize(e.RoundedAmount).Sub(money.Normalize(e.OriginalAmount)),
	)
}
