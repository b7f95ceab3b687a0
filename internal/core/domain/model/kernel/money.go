package kernel

import (
	"pizzeria/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is a value object representing a monetary amount in euros.
// It wraps a decimal number so that sums and percentage discounts are exact;
// rounding to two decimal places happens only at presentation time.
//
// The zero value of Money is a valid amount of zero euros, which is a
// legitimate price in this domain (a pizza with no ingredients costs nothing).
//
// Money is immutable: every operation returns a new Money value.
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates a Money value from a decimal amount.
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

// NewMoneyFromCents creates a Money value from an integer amount of euro cents.
//
// Example:
//
//	price := kernel.NewMoneyFromCents(650) // €6.50
func NewMoneyFromCents(cents int64) Money {
	return Money{amount: decimal.New(cents, -2)}
}

// NewMoneyFromString parses a Money value from its decimal string
// representation, e.g. "6.50". Returns an error for malformed input.
func NewMoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money amount", err)
	}
	return Money{amount: amount}, nil
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// MulInt returns the amount multiplied by an integer quantity.
func (m Money) MulInt(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

// ApplyDiscountPercent returns the amount reduced by the given whole-number
// percentage, i.e. amount × (100 − percent) / 100. The division is exact for
// the percentages used in this domain; callers format with StringFixed for
// display.
func (m Money) ApplyDiscountPercent(percent int) Money {
	factor := decimal.NewFromInt(int64(100 - percent))
	return Money{amount: m.amount.Mul(factor).Div(decimal.NewFromInt(100))}
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares two amounts numerically, so €6.5 and €6.50 are equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Decimal returns the underlying decimal amount.
// This is used by the persistence layer to store amounts as NUMERIC columns.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String returns the amount rounded to standard currency precision
// (two decimal places), e.g. "6.50".
func (m Money) String() string {
	return m.amount.StringFixed(2)
}
