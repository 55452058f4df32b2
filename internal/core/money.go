// Package core provides the pure expense-classification domain: recurring
// charges, the merchant categorizer, derived expenses, and the aggregates
// consumed by the calendar and summary views.
//
// This file contains money handling. Stored amounts (monthly spend,
// goals) are kept in cents to avoid floating-point drift; charge
// averages stay as the wire decimal so derivation rounds them once.
package core

import (
	"fmt"
	"math"
)

// MoneyFromFloat converts a decimal wire amount to cents with half-up
// rounding. Negative amounts round away from zero so Validate can still
// reject them with their sign intact.
func MoneyFromFloat(amount float64) Money {
	if amount < 0 {
		return Money{Cents: -int64(math.Floor(-amount*100 + 0.5))}
	}
	return Money{Cents: int64(math.Floor(amount*100 + 0.5))}
}

// Float returns the decimal value for wire encoding and display.
// Use cents for calculations.
func (m Money) Float() float64 {
	return float64(m.Cents) / 100.0
}

// RoundUnits rounds a decimal amount to the nearest whole currency unit,
// half-up, in a single step. Rounding to cents first and then to units
// would lift values like 11.4951 (cents 1150, units 12) past the half
// boundary; derived amounts go through this function only.
//
// Examples:
//
//	RoundUnits(15.2453333333333) -> 15
//	RoundUnits(11.62) -> 12
//	RoundUnits(11.5) -> 12
func RoundUnits(amount float64) int64 {
	if amount < 0 {
		return -int64(math.Floor(-amount + 0.5))
	}
	return int64(math.Floor(amount + 0.5))
}

// FormatPesos renders an amount in whole units as a display string.
func FormatPesos(units int64) string {
	return fmt.Sprintf("$%d", units)
}
