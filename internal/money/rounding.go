package money

import "github.com/shopspring/decimal"

// RoundUp applies the micro-saving rounding policy to an expense amount.
//
// When active is false the amount passes through unchanged (normalized) and
// nothing is saved. When active, the amount is rounded up to the next whole
// currency unit and the difference becomes the savings. An already-whole
// amount rounds to itself, so its savings are 0.00 and no credit should be
// produced downstream.
func RoundUp(original decimal.Decimal, active bool) (rounded, saved decimal.Decimal) {
	normalized := Normalize(original)

	if !active {
		return normalized, Zero()
	}

	rounded = Normalize(original.Ceil())
	saved = Normalize(rounded.Sub(normalized))
	return rounded, saved
}
