// Package core provides the expense data model.
//
// This file contains the parsing of monetary amounts typed by the user.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Accepted range for the decimal exponent of an amount.
const (
	MinAmountExponent = -20
	MaxAmountExponent = 20
)

// AmountInRange reports whether the exponent of d lies within
// [MinAmountExponent, MaxAmountExponent]. Rendering or summing an amount
// costs time and memory in proportion to its exponent.
func AmountInRange(d decimal.Decimal) bool {
	exp := d.Exponent()
	return exp >= MinAmountExponent && exp <= MaxAmountExponent
}

// ParseAmount converts user input into a non-negative decimal amount.
//
// Both dot (12.34) and comma (12,34) decimal separators are accepted, but
// not together. A comma followed by exactly three digits (1,000) reads as a
// thousands separator and is rejected as ambiguous. The value is kept exactly
// as typed, without rounding to cents.
//
// Examples:
//
//	ParseAmount("12.5")  -> 12.5, nil
//	ParseAmount("12,50") -> 12.5, nil
//	ParseAmount("0")     -> 0, nil
//	ParseAmount("-1")    -> 0, ErrNegativeAmount
//	ParseAmount("1,000") -> 0, ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	if i := strings.LastIndex(s, ","); i >= 0 {
		if strings.Contains(s, ".") || isThreeDigits(s[i+1:]) {
			return decimal.Zero, ErrInvalidAmount
		}
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	if !AmountInRange(d) {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

func isThreeDigits(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatMoney renders an amount for display with two decimals.
func FormatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
