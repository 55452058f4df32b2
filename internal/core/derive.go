package core

import "time"

// Totals holds the monthly summary figures. The source UI labels the same
// underlying recurring total both "fixed" and "variable"; see
// MonthlyTotals for how the grand total is assembled.
type Totals struct {
	FixedTotal    int64
	VariableTotal int64
	GrandTotal    int64
}

// Derive turns the ordered charge snapshot into categorized expenses.
// Output order equals input order; ids are 1-based per pass; no entry is
// dropped or deduplicated. Reminders are enabled for every derived item.
func Derive(charges ChargeList) []CategorizedExpense {
	expenses := make([]CategorizedExpense, 0, len(charges))
	for i, c := range charges {
		expenses = append(expenses, CategorizedExpense{
			ID:              i + 1,
			MerchantName:    c.MerchantName,
			Category:        Categorize(c.MerchantName),
			Amount:          RoundUnits(c.AverageAmount),
			DueDay:          c.DayOfMonth,
			ReminderEnabled: true,
		})
	}
	return expenses
}

// ExpensesOnDay filters by exact due-day equality, preserving relative
// order. A day with no charges yields an empty slice, not an error.
func ExpensesOnDay(expenses []CategorizedExpense, day int) []CategorizedExpense {
	out := []CategorizedExpense{}
	for _, e := range expenses {
		if e.DueDay == day {
			out = append(out, e)
		}
	}
	return out
}

// AggregateByCategory groups expenses into buckets. Bucket order is the
// order in which each category is first encountered while scanning the
// input, not alphabetical.
func AggregateByCategory(expenses []CategorizedExpense) []CategoryBucket {
	index := make(map[Category]int)
	buckets := []CategoryBucket{}
	for _, e := range expenses {
		i, seen := index[e.Category]
		if !seen {
			i = len(buckets)
			index[e.Category] = i
			buckets = append(buckets, CategoryBucket{
				Category:    e.Category,
				DisplayName: e.Category.DisplayName(),
			})
		}
		buckets[i].TotalAmount += e.Amount
		buckets[i].MemberCount++
	}
	return buckets
}

// MonthlyTotals computes the fixed/variable/grand summary. FixedTotal sums
// every expense; VariableTotal re-sums the same amounts through the
// category buckets, so the two are numerically identical. When
// doubleCountVariable is true the grand total adds both, duplicating every
// charge exactly as the source views do. Passing false makes the grand
// total the plain sum instead.
func MonthlyTotals(expenses []CategorizedExpense, doubleCountVariable bool) Totals {
	var t Totals
	for _, e := range expenses {
		t.FixedTotal += e.Amount
	}
	for _, b := range AggregateByCategory(expenses) {
		t.VariableTotal += b.TotalAmount
	}
	if doubleCountVariable {
		t.GrandTotal = t.FixedTotal + t.VariableTotal
	} else {
		t.GrandTotal = t.FixedTotal
	}
	return t
}

// PercentOfTotal returns amount as a percentage of total, with an empty
// snapshot treated as 0% rather than a division fault.
func PercentOfTotal(amount, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(amount) / float64(total) * 100
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampDueDay resolves a due day against the displayed month. Days past
// the end of the month clamp to its last valid day, so a charge on the
// 31st lands on the 30th in a 30-day month instead of an invalid cell.
func ClampDueDay(dueDay, year int, month time.Month) int {
	if last := DaysInMonth(year, month); dueDay > last {
		return last
	}
	return dueDay
}
