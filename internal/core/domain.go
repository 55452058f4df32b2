package core

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// Monthly is the only charge cadence observed on the wire ("mensual").
	Monthly ChargeKind = "mensual"
)

type (
	ChargeKind string

	// Category is one of the closed set of labels used to group
	// recurring charges for summary display.
	Category string

	Money struct {
		Cents int64
	}

	// RecurringCharge is a named periodic expense with a fixed due day
	// and historical average amount. Merchant name is the unique key on
	// the wire. AverageAmount keeps the wire decimal untouched so the
	// derivation pass applies its rounding exactly once; convert with
	// MoneyFromFloat only at storage boundaries.
	RecurringCharge struct {
		MerchantName  string
		Kind          ChargeKind
		DayOfMonth    int
		AverageAmount float64
	}

	// CategorizedExpense is derived from a RecurringCharge during one
	// derivation pass. IDs are stable only within that pass.
	CategorizedExpense struct {
		ID              int
		MerchantName    string
		Category        Category
		Amount          int64 // whole currency units, rounded half-up
		DueDay          int
		ReminderEnabled bool
	}

	// CategoryBucket aggregates the expenses of one category.
	CategoryBucket struct {
		Category    Category
		DisplayName string
		TotalAmount int64
		MemberCount int
	}
)

const (
	CategorySubscriptions Category = "suscripciones"
	CategoryShopping      Category = "compras"
	CategoryServices      Category = "servicios"
	CategoryEntertainment Category = "entretenimiento"
	CategoryPayments      Category = "pagos"
	CategoryOther         Category = "otros"
)

var (
	ErrEmptyMerchant = errors.New("empty merchant name")
	ErrInvalidDay    = errors.New("day of month out of range")
	ErrInvalidAmount = errors.New("invalid amount")
)

// DisplayName returns the category label with its first rune upper-cased,
// remainder unchanged.
func (c Category) DisplayName() string {
	s := string(c)
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

func (rc RecurringCharge) Validate() error {
	if len(strings.TrimSpace(rc.MerchantName)) == 0 {
		return ErrEmptyMerchant
	}
	if rc.DayOfMonth < 1 || rc.DayOfMonth > 31 {
		return ErrInvalidDay
	}
	if rc.AverageAmount < 0 {
		return ErrInvalidAmount
	}
	return nil
}
