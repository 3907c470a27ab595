package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingMovement(t *testing.T, a *Account, kind MovementKind, amount string) *Movement {
	t.Helper()
	m, err := NewMovement(a.ID, nil, a.UserID, dec(amount), kind, "test movement")
	require.NoError(t, err)
	return m
}

func TestNewMovement_RejectsNonPositiveAmount(t *testing.T) {
	a := newTestAccount()
	for _, amount := range []string{"0", "-0.01"} {
		_, err := NewMovement(a.ID, nil, a.UserID, dec(amount), MovementKindCredit, "x")
		require.ErrorIs(t, err, ErrInvalidAmount)
	}
}

func TestMovementApply_Credit(t *testing.T) {
	a := newTestAccount()
	m := newPendingMovement(t, a, MovementKindCredit, "0.60")

	require.NoError(t, m.Apply(a))

	assert.Equal(t, MovementStatusCompleted, m.Status)
	assert.True(t, dec("0.00").Equal(m.PreviousBalance))
	assert.True(t, dec("0.60").Equal(m.NewBalance))
	assert.True(t, dec("0.60").Equal(a.Balance))
	assert.True(t, dec("0.60").Equal(a.TotalHistoricalSavings))
}

func TestMovementApply_Debit(t *testing.T) {
	a := newTestAccount()
	require.NoError(t, a.Credit(dec("5.00")))

	m := newPendingMovement(t, a, MovementKindDebit, "1.25")
	require.NoError(t, m.Apply(a))

	assert.Equal(t, MovementStatusCompleted, m.Status)
	assert.True(t, dec("5.00").Equal(m.PreviousBalance))
	assert.True(t, dec("3.75").Equal(m.NewBalance))
	assert.True(t, dec("5.00").Equal(a.TotalHistoricalSavings))
}

func TestMovementApply_NilAccount(t *testing.T) {
	a := newTestAccount()
	m := newPendingMovement(t, a, MovementKindCredit, "1.00")
	require.ErrorIs(t, m.Apply(nil), ErrMovementHasNoAccount)
	assert.Equal(t, MovementStatusPending, m.Status)
}

func TestMovementApply_Twice(t *testing.T) {
	a := newTestAccount()
	m := newPendingMovement(t, a, MovementKindCredit, "1.00")

	require.NoError(t, m.Apply(a))
	require.ErrorIs(t, m.Apply(a), ErrMovementNotPending)
	assert.True(t, dec("1.00").Equal(a.Balance), "second apply must not touch the account")
}

func TestMovementApply_PropagatesAccountFailure(t *testing.T) {
	a := newTestAccount()
	m := newPendingMovement(t, a, MovementKindDebit, "1.00")

	err := m.Apply(a)
	require.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Equal(t, MovementStatusPending, m.Status, "failed apply leaves the movement pending")
	assert.True(t, a.Balance.IsZero())
}

func TestMovementRevert_Credit(t *testing.T) {
	a := newTestAccount()
	m := newPendingMovement(t, a, MovementKindCredit, "0.60")
	require.NoError(t, m.Apply(a))

	require.NoError(t, m.Revert(a))

	assert.Equal(t, MovementStatusReverted, m.Status)
	assert.True(t, dec("0.60").Equal(m.PreviousBalance))
	assert.True(t, dec("0.00").Equal(m.NewBalance))
	assert.True(t, a.Balance.IsZero(), "apply then revert returns the balance to its pre-apply value")
	assert.True(t, dec("0.60").Equal(a.TotalHistoricalSavings), "reverting a credit does not rewind historical savings")
}

func TestMovementRevert_Debit(t *testing.T) {
	a := newTestAccount()
	require.NoError(t, a.Credit(dec("5.00")))

	m := newPendingMovement(t, a, MovementKindDebit, "2.00")
	require.NoError(t, m.Apply(a))
	require.NoError(t, m.Revert(a))

	assert.Equal(t, MovementStatusReverted, m.Status)
	assert.True(t, dec("5.00").Equal(a.Balance))
	// Reverting a debit goes through Credit, which counts toward history.
	assert.True(t, dec("7.00").Equal(a.TotalHistoricalSavings))
}

func TestMovementRevert_CreditAfterFundsSpent(t *testing.T) {
	a := newTestAccount()
	m := newPendingMovement(t, a, MovementKindCredit, "2.00")
	require.NoError(t, m.Apply(a))
	require.NoError(t, a.Debit(dec("1.50")))

	err := m.Revert(a)
	require.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Equal(t, MovementStatusCompleted, m.Status, "failed revert leaves the movement completed")
	assert.True(t, dec("0.50").Equal(a.Balance))
}

func TestMovementIllegalTransitions(t *testing.T) {
	a := newTestAccount()

	t.Run("pending cannot be reverted", func(t *testing.T) {
		m := newPendingMovement(t, a, MovementKindCredit, "1.00")
		require.ErrorIs(t, m.Revert(a), ErrMovementNotCompleted)
	})

	t.Run("reverted is terminal", func(t *testing.T) {
		acct := newTestAccount()
		m := newPendingMovement(t, acct, MovementKindCredit, "1.00")
		require.NoError(t, m.Apply(acct))
		require.NoError(t, m.Revert(acct))

		require.ErrorIs(t, m.Apply(acct), ErrMovementNotPending)
		require.ErrorIs(t, m.Revert(acct), ErrMovementNotCompleted)
	})
}
