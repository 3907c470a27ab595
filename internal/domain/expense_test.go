package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExpense(t *testing.T) {
	e := NewExpense(uuid.New(), dec("10.4"), "coffee and pastry", CategoryFood, "Cafe Central")

	assert.Equal(t, ExpenseStatusPending, e.Status)
	assert.True(t, dec("10.40").Equal(e.OriginalAmount))
	assert.True(t, dec("10.40").Equal(e.RoundedAmount))
	assert.True(t, e.SavingsDifference.IsZero())
}

func TestExpenseApplyRounding(t *testing.T) {
	activeCfg := NewSavingsConfig(uuid.New())
	inactiveCfg := NewSavingsConfig(uuid.New())
	require.NoError(t, inactiveCfg.Deactivate())

	tests := []struct {
		name        string
		amount      string
		cfg         *SavingsConfig
		wantRounded string
		wantSaved   string
	}{
		{"active config rounds up", "4.35", activeCfg, "5.00", "0.65"},
		{"active config whole amount", "10.00", activeCfg, "10.00", "0.00"},
		{"inactive config passes through", "4.35", inactiveCfg, "4.35", "0.00"},
		{"nil config passes through", "4.35", nil, "4.35", "0.00"},
		{"active config forty cents over", "10.40", activeCfg, "11.00", "0.60"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := NewExpense(uuid.New(), dec(tc.amount), "desc", CategoryOther, "merchant")
			e.ApplyRounding(tc.cfg)

			assert.True(t, dec(tc.wantRounded).Equal(e.RoundedAmount), "rounded: got %s", e.RoundedAmount)
			assert.True(t, dec(tc.wantSaved).Equal(e.SavingsDifference), "saved: got %s", e.SavingsDifference)
			assert.False(t, e.SavingsDifference.IsNegative())
		})
	}
}

func TestExpenseStatusTransitions(t *testing.T) {
	e := NewExpense(uuid.New(), dec("1.00"), "d", CategoryOther, "m")

	e.MarkProcessed()
	assert.Equal(t, ExpenseStatusProcessed, e.Status)

	e.MarkRejected()
	assert.Equal(t, ExpenseStatusRejected, e.Status)
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    ExpenseCategory
		wantErr bool
	}{
		{"food", CategoryFood, false},
		{"FOOD", CategoryFood, false},
		{" Transportation ", CategoryTransportation, false},
		{"personal_care", CategoryPersonalCare, false},
		{"groceries", "", true},
		{"", "", true},
	}

	for _, tc := range tests {
		got, err := ParseCategory(tc.in)
		if tc.wantErr {
			require.ErrorIs(t, err, ErrInvalidCategory, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestSavingsConfigToggles(t *testing.T) {
	c := NewSavingsConfig(uuid.New())
	assert.True(t, c.Active)
	assert.Equal(t, 1, c.Version)

	require.ErrorIs(t, c.Activate(), ErrConfigAlreadyActive)
	assert.Equal(t, 1, c.Version, "rejected toggle must not bump the version")

	require.NoError(t, c.Deactivate())
	assert.False(t, c.Active)
	assert.Equal(t, 2, c.Version)

	require.ErrorIs(t, c.Deactivate(), ErrConfigAlreadyInactive)

	require.NoError(t, c.Activate())
	assert.True(t, c.Active)
	assert.Equal(t, 3, c.Version)
}
