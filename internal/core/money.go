// Package core provides the domain model shared by the API layer, the
// aggregation engine, and the record stores.
//
// This file contains parsing and arithmetic helpers for monetary amounts.
// Amounts are exact decimals; never use float64 for money math.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a non-negative decimal amount. Signed arithmetic only appears in
// derived values (balances, deltas), never on stored records.
type Money struct {
	decimal.Decimal
}

// NewMoney builds a Money from a decimal value.
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// MoneyFromInt is a convenience constructor for whole amounts.
func MoneyFromInt(n int64) Money {
	return Money{Decimal: decimal.NewFromInt(n)}
}

// ParseMoney parses a decimal string into a Money. It accepts both dot and
// comma decimal separators and rejects negative or malformed values.
//
// Examples:
//
//	ParseMoney("12.34") -> 12.34, nil
//	ParseMoney("12,34") -> 12.34, nil
//	ParseMoney("-5")    -> zero, ErrInvalidAmount
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	if d.IsNegative() {
		return Money{}, ErrInvalidAmount
	}
	return Money{Decimal: d}, nil
}

func (m Money) Validate() error {
	if m.Decimal.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{Decimal: m.Decimal.Add(other.Decimal)}
}

// Equal reports numeric equality regardless of exponent representation.
func (m Money) Equal(other Money) bool {
	return m.Decimal.Equal(other.Decimal)
}
