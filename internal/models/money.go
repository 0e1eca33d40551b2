package models

import (
	"github.com/shopspring/decimal"
)

// Money is an exact decimal monetary amount. It wraps shopspring/decimal so
// arithmetic never goes through floating point; the embedded type provides
// sql.Scanner, driver.Valuer and JSON marshaling.
type Money struct {
	decimal.Decimal
}

// Zero is the zero amount.
var Zero = Money{}

// NewMoney parses a decimal string like "100.11".
func NewMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// MustMoney parses a decimal string and panics on failure. For constants and tests.
func MustMoney(s string) Money {
	m, err := NewMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// MoneyFromInt builds an amount from whole units.
func MoneyFromInt(n int64) Money {
	return Money{decimal.NewFromInt(n)}
}

func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

func (m Money) Neg() Money {
	return Money{m.Decimal.Neg()}
}

// Cmp returns -1, 0 or 1 comparing m against other.
func (m Money) Cmp(other Money) int {
	return m.Decimal.Cmp(other.Decimal)
}

func (m Money) Equal(other Money) bool {
	return m.Decimal.Equal(other.Decimal)
}

func (m Money) IsNegative() bool {
	return m.Decimal.IsNegative()
}

func (m Money) IsZero() bool {
	return m.Decimal.IsZero()
}

func (m Money) IsPositive() bool {
	return m.Decimal.IsPositive()
}

// String renders with a fixed two-decimal scale, the display format used
// across statements and transfer descriptions.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}
