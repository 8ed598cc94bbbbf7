package kernel

import (
	"fmt"

	"foodorder/internal/pkg/errs"
)

// Money is a monetary amount expressed in the currency's minor unit (paise,
// cents). Amounts are always non-negative in this domain: prices, fees, taxes
// and totals. Arithmetic on Money never leaves the minor-unit representation,
// so pricing snapshots are exact and reproducible.
type Money int64

// NewMoney creates a Money value, rejecting negative amounts.
func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%d is negative", amount))
	}
	return Money(amount), nil
}

// Amount returns the value in minor units.
func (m Money) Amount() int64 {
	return int64(m)
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return m + other
}

// MulQuantity multiplies the amount by an item quantity.
func (m Money) MulQuantity(qty int) Money {
	return m * Money(qty)
}

// Percent returns the given percentage of the amount, rounded half-up to the
// nearest minor unit. Used for the tax policy, which is defined as a percent
// of the subtotal.
func (m Money) Percent(pct int) Money {
	return Money((int64(m)*int64(pct) + 50) / 100)
}

// GreaterThan reports whether m exceeds other.
func (m Money) GreaterThan(other Money) bool {
	return m > other
}
