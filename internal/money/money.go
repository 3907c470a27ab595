// Package money defines how monetary values are normalized and how the
// round-up savings policy computes the amount saved per expense. Every
// monetary field in the system passes through Normalize before it is
// compared, stored, or used in arithmetic.
package money

import "github.com/shopspring/decimal"

// Scale is the number of fractional digits every stored amount carries.
const Scale = 2

// Normalize returns d with exactly two fractional digits, rounding half
// away from zero. The zero value normalizes to 0.00. Idempotent.
func Normalize(d decimal.Decimal) decimal.Decimal {
	return d.Round(Scale)
}

// Zero is a normalized 0.00.
func Zero() decimal.Decimal {
	return decimal.Zero.Round(Scale)
}

// IsPositive reports whether d is strictly greater than zero.
func IsPositive(d decimal.Decimal) bool {
	return d.GreaterThan(decimal.Zero)
}
