package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahorraya/savings-backend/internal/domain"
	"github.com/ahorraya/savings-backend/internal/repository"
	"github.com/ahorraya/savings-backend/internal/testutil"
)

func setupMovementTest(t *testing.T, db *sql.DB) *MovementService {
	t.Helper()

	return NewMovementService(
		repository.NewAccountRepository(db),
		repository.NewMovementRepository(db),
		db,
	)
}

func TestCreateCreditMovement(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupMovementTest(t, db)
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "maria", "maria@example.com")
	account := testutil.SeedTestAccount(t, db, user.ID, dec("1.00"))

	movement, err := svc.CreateCreditMovement(ctx, account.ID, dec("2.50"), "manual deposit")
	require.NoError(t, err)

	assert.Equal(t, domain.MovementStatusCompleted, movement.Status)
	assert.True(t, movement.PreviousBalance.Equal(dec("1.00")))
	assert.True(t, movement.NewBalance.Equal(dec("3.50")))
	assert.Nil(t, movement.ExpenseID)

	assert.True(t, testutil.GetAccountBalance(t, db, account.ID).Equal(dec("3.50")))
	assert.True(t, testutil.GetHistoricalSavings(t, db, account.ID).Equal(dec("3.50")))
}

func TestCreateDebitMovement(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupMovementTest(t, db)
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "maria", "maria@example.com")
	account := testutil.SeedTestAccount(t, db, user.ID, dec("5.00"))

	movement, err := svc.CreateDebitMovement(ctx, account.ID, dec("2.00"), "withdrawal")
	require.NoError(t, err)

	assert.True(t, movement.NewBalance.Equal(dec("3.00")))
	assert.True(t, testutil.GetAccountBalance(t, db, account.ID).Equal(dec("3.00")))

	// Debits never touch the historical savings total.
	assert.True(t, testutil.GetHistoricalSavings(t, db, account.ID).Equal(dec("5.00")))
}

func TestCreateDebitMovement_InsufficientBalance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupMovementTest(t, db)
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "maria", "maria@example.com")
	account := testutil.SeedTestAccount(t, db, user.ID, dec("1.00"))

	_, err := svc.CreateDebitMovement(ctx, account.ID, dec("1.01"), "withdrawal")
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	// The failed movement leaves nothing behind.
	assert.True(t, testutil.GetAccountBalance(t, db, account.ID).Equal(dec("1.00")))
	assert.Equal(t, 0, testutil.CountMovements(t, db, account.ID))
}

func TestCreateMovement_InvalidAmount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupMovementTest(t, db)
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "maria", "maria@example.com")
	account := testutil.SeedTestAccount(t, db, user.ID, dec("1.00"))

	_, err := svc.CreateCreditMovement(ctx, account.ID, dec("0.00"), "")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.CreateDebitMovement(ctx, account.ID, dec("-3.00"), "")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestRevertMovement_CreditRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupMovementTest(t, db)
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "maria", "maria@example.com")
	account := testutil.SeedTestAccount(t, db, user.ID, dec("0.00"))

	movement, err := svc.CreateCreditMovement(ctx, account.ID, dec("0.60"), "savings")
	require.NoError(t, err)

	reverted, err := svc.RevertMovement(ctx, movement.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.MovementStatusReverted, reverted.Status)
	assert.True(t, reverted.PreviousBalance.Equal(dec("0.60")))
	assert.True(t, reverted.NewBalance.Equal(dec("0.00")))
	assert.True(t, testutil.GetAccountBalance(t, db, account.ID).IsZero())
}

func TestRevertMovement_DebitAddsToHistory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupMovementTest(t, db)
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "maria", "maria@example.com")
	account := testutil.SeedTestAccount(t, db, user.ID, dec("5.00"))

	movement, err := svc.CreateDebitMovement(ctx, account.ID, dec("2.00"), "withdrawal")
	require.NoError(t, err)

	_, err = svc.RevertMovement(ctx, movement.ID)
	require.NoError(t, err)

	assert.True(t, testutil.GetAccountBalance(t, db, account.ID).Equal(dec("5.00")))

	// Reverting a debit goes through the credit primitive, which grows the
	// historical total.
	assert.True(t, testutil.GetHistoricalSavings(t, db, account.ID).Equal(dec("7.00")))
}

func TestRevertMovement_FailsWhenFundsSpent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupMovementTest(t, db)
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "maria", "maria@example.com")
	account := testutil.SeedTestAccount(t, db, user.ID, dec("0.00"))

	credit, err := svc.CreateCreditMovement(ctx, account.ID, dec("0.60"), "savings")
	require.NoError(t, err)

	_, err = svc.CreateDebitMovement(ctx, account.ID, dec("0.50"), "withdrawal")
	require.NoError(t, err)

	_, err = svc.RevertMovement(ctx, credit.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	// The failed revert leaves the movement completed and the balance
	// untouched.
	stored, err := svc.GetByID(ctx, credit.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MovementStatusCompleted, stored.Status)
	assert.True(t, testutil.GetAccountBalance(t, db, account.ID).Equal(dec("0.10")))
}

func TestRevertMovement_Twice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupMovementTest(t, db)
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "maria", "maria@example.com")
	account := testutil.SeedTestAccount(t, db, user.ID, dec("0.00"))

	movement, err := svc.CreateCreditMovement(ctx, account.ID, dec("1.00"), "savings")
	require.NoError(t, err)

	_, err = svc.RevertMovement(ctx, movement.ID)
	require.NoError(t, err)

	_, err = svc.RevertMovement(ctx, movement.ID)
	assert.ErrorIs(t, err, domain.ErrMovementNotCompleted)
}

func TestConcurrentDebits_NeverOverdraw(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := setupMovementTest(t, db)
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "maria", "maria@example.com")
	account := testutil.SeedTestAccount(t, db, user.ID, dec("5.00"))

	const workers = 10

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.CreateDebitMovement(ctx, account.ID, dec("1.00"), "concurrent withdrawal")
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
		}
	}

	assert.Equal(t, 5, succeeded)
	assert.True(t, testutil.GetAccountBalance(t, db, account.ID).IsZero())
	assert.Equal(t, 5, testutil.CountMovements(t, db, account.ID))
}
