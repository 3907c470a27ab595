package testutil

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/ahorraya/savings-backend/internal/domain"
)

var accountSeq int

func SeedTestUser(t *testing.T, db *sql.DB, username, email string) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: string(hash),
		Status:       domain.UserStatusActive,
		CreatedAt:    time.Now().UTC(),
	}

	_, err = db.Exec(
		`INSERT INTO users (id, username, email, first_name, last_name, password_hash, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Username, u.Email, u.FirstName, u.LastName, u.PasswordHash, u.Status, u.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed test user %s: %v", email, err)
	}
	return u
}

func SeedTestAccount(t *testing.T, db *sql.DB, userID uuid.UUID, balance decimal.Decimal) *domain.Account {
	t.Helper()

	accountSeq++
	a := &domain.Account{
		ID:                     uuid.New(),
		UserID:                 userID,
		AccountNumber:          fmt.Sprintf("SA%013d", accountSeq),
		Balance:                balance,
		TotalHistoricalSavings: balance,
		Status:                 domain.AccountStatusActive,
		LastMovementAt:         time.Now().UTC(),
		Version:                1,
		CreatedAt:              time.Now().UTC(),
	}

	_, err := db.Exec(
		`INSERT INTO saving_accounts (id, user_id, account_number, balance, total_historical_savings,
			status, is_deleted, last_movement_at, version, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID, a.UserID, a.AccountNumber, a.Balance, a.TotalHistoricalSavings,
		a.Status, a.Deleted, a.LastMovementAt, a.Version, a.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed test account for %s: %v", userID, err)
	}
	return a
}

func SeedActiveConfig(t *testing.T, db *sql.DB, userID uuid.UUID) *domain.SavingsConfig {
	t.Helper()
	return seedConfig(t, db, userID, true)
}

func SeedInactiveConfig(t *testing.T, db *sql.DB, userID uuid.UUID) *domain.SavingsConfig {
	t.Helper()
	return seedConfig(t, db, userID, false)
}

func seedConfig(t *testing.T, db *sql.DB, userID uuid.UUID, active bool) *domain.SavingsConfig {
	t.Helper()

	c := &domain.SavingsConfig{
		ID:        uuid.New(),
		UserID:    userID,
		Active:    active,
		Version:   1,
		CreatedAt: time.Now().UTC(),
	}

	_, err := db.Exec(
		`INSERT INTO savings_configs (id, user_id, active, version, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.UserID, c.Active, c.Version, c.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed savings config for %s: %v", userID, err)
	}
	return c
}

func GetAccountBalance(t *testing.T, db *sql.DB, accountID uuid.UUID) decimal.Decimal {
	t.Helper()

	var balance decimal.Decimal
	err := db.QueryRow(`SELECT balance FROM saving_accounts WHERE id = $1`, accountID).Scan(&balance)
	if err != nil {
		t.Fatalf("get account balance %s: %v", accountID, err)
	}
	return balance
}

func GetHistoricalSavings(t *testing.T, db *sql.DB, accountID uuid.UUID) decimal.Decimal {
	t.Helper()

	var total decimal.Decimal
	err := db.QueryRow(`SELECT total_historical_savings FROM saving_accounts WHERE id = $1`, accountID).Scan(&total)
	if err != nil {
		t.Fatalf("get historical savings %s: %v", accountID, err)
	}
	return total
}

func CountExpenses(t *testing.T, db *sql.DB, userID uuid.UUID) int {
	t.Helper()

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM expenses WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		t.Fatalf("count expenses for user %s: %v", userID, err)
	}
	return count
}

func CountMovements(t *testing.T, db *sql.DB, accountID uuid.UUID) int {
	t.Helper()

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM saving_movements WHERE account_id = $1`, accountID).Scan(&count)
	if err != nil {
		t.Fatalf("count movements for account %s: %v", accountID, err)
	}
	return count
}
