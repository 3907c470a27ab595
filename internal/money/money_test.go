package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already two decimals", "10.40", "10.40"},
		{"truncates trailing precision half down", "12.344", "12.34"},
		{"rounds half up", "12.345", "12.35"},
		{"rounds up past half", "12.346", "12.35"},
		{"integer gains scale", "5", "5.00"},
		{"zero", "0", "0.00"},
		{"single decimal digit", "3.5", "3.50"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(dec(tc.in))
			assert.True(t, dec(tc.want).Equal(got), "got %s, want %s", got, tc.want)
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, s := range []string{"0", "0.005", "4.35", "10.999", "123456.789", "1"} {
		once := Normalize(dec(s))
		twice := Normalize(once)
		require.True(t, once.Equal(twice), "normalize(normalize(%s)) = %s, want %s", s, twice, once)
	}
}

func TestNormalize_ZeroValue(t *testing.T) {
	var d decimal.Decimal
	assert.True(t, Zero().Equal(Normalize(d)))
}

func TestRoundUp_Active(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		wantRound  string
		wantSaved  string
	}{
		{"fractional rounds to next unit", "4.35", "5.00", "0.65"},
		{"just above whole", "10.01", "11.00", "0.99"},
		{"just below whole", "10.99", "11.00", "0.01"},
		{"already whole saves nothing", "5.00", "5.00", "0.00"},
		{"whole without scale", "7", "7.00", "0.00"},
		{"forty cents over", "10.40", "11.00", "0.60"},
		{"sub-unit amount", "0.35", "1.00", "0.65"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rounded, saved := RoundUp(dec(tc.in), true)
			assert.True(t, dec(tc.wantRound).Equal(rounded), "rounded: got %s, want %s", rounded, tc.wantRound)
			assert.True(t, dec(tc.wantSaved).Equal(saved), "saved: got %s, want %s", saved, tc.wantSaved)
			assert.True(t, rounded.GreaterThanOrEqual(Normalize(dec(tc.in))))
			assert.True(t, rounded.Equal(rounded.Truncate(0).Round(Scale)), "rounded must be a whole unit")
		})
	}
}

func TestRoundUp_Inactive(t *testing.T) {
	for _, s := range []string{"4.35", "5.00", "10.40", "0.01"} {
		rounded, saved := RoundUp(dec(s), false)
		assert.True(t, Normalize(dec(s)).Equal(rounded), "inactive policy must pass %s through", s)
		assert.True(t, saved.IsZero(), "inactive policy must save nothing for %s", s)
	}
}
