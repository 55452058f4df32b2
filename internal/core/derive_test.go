package core

import (
	"encoding/json"
	"testing"
	"time"
)

func sampleCharges() ChargeList {
	return ChargeList{
		{MerchantName: "NETFLIX", Kind: Monthly, DayOfMonth: 19, AverageAmount: 11.62},
		{MerchantName: "OXXO", Kind: Monthly, DayOfMonth: 12, AverageAmount: 15.2453333333333},
		{MerchantName: "IZZI", Kind: Monthly, DayOfMonth: 15, AverageAmount: 50.02},
		{MerchantName: "MELIMAS", Kind: Monthly, DayOfMonth: 21, AverageAmount: 15.16},
	}
}

func TestDeriveOrderAndFields(t *testing.T) {
	charges := sampleCharges()
	expenses := Derive(charges)

	if len(expenses) != len(charges) {
		t.Fatalf("expected %d expenses, got %d", len(charges), len(expenses))
	}
	for i, e := range expenses {
		if e.ID != i+1 {
			t.Errorf("expense %d: id = %d, want %d", i, e.ID, i+1)
		}
		if e.MerchantName != charges[i].MerchantName {
			t.Errorf("expense %d: merchant = %q, want %q", i, e.MerchantName, charges[i].MerchantName)
		}
		if e.DueDay != charges[i].DayOfMonth {
			t.Errorf("expense %d: dueDay = %d, want %d", i, e.DueDay, charges[i].DayOfMonth)
		}
		if !e.ReminderEnabled {
			t.Errorf("expense %d: reminder not enabled", i)
		}
	}

	// Half-up rounding to whole units.
	if expenses[0].Amount != 12 {
		t.Errorf("NETFLIX amount = %d, want 12", expenses[0].Amount)
	}
	if expenses[1].Amount != 15 {
		t.Errorf("OXXO amount = %d, want 15", expenses[1].Amount)
	}
}

// Amounts round half-up exactly once, from the wire decimal. A value in
// the [x.495, x.50) band must not be lifted past the half by an
// intermediate cent rounding.
func TestDeriveRoundsWireAmountOnce(t *testing.T) {
	payload := `{"GYM": {"tipo": "mensual", "dia_pago": 5, "promedio_monto": 11.4951}}`
	var charges ChargeList
	if err := json.Unmarshal([]byte(payload), &charges); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	expenses := Derive(charges)
	if len(expenses) != 1 {
		t.Fatalf("expected 1 expense, got %d", len(expenses))
	}
	if expenses[0].Amount != 11 {
		t.Errorf("amount = %d, want 11 (single half-up rounding of 11.4951)", expenses[0].Amount)
	}
}

func TestDeriveKeepsDuplicateMerchants(t *testing.T) {
	charges := ChargeList{
		{MerchantName: "OXXO", Kind: Monthly, DayOfMonth: 3, AverageAmount: 1.00},
		{MerchantName: "OXXO", Kind: Monthly, DayOfMonth: 20, AverageAmount: 2.00},
	}
	expenses := Derive(charges)
	if len(expenses) != 2 {
		t.Fatalf("expected duplicates kept, got %d expenses", len(expenses))
	}
	if expenses[0].DueDay != 3 || expenses[1].DueDay != 20 {
		t.Errorf("duplicate entries out of order: %+v", expenses)
	}
}

func TestExpensesOnDay(t *testing.T) {
	expenses := Derive(sampleCharges())

	day12 := ExpensesOnDay(expenses, 12)
	if len(day12) != 1 {
		t.Fatalf("expected 1 expense on day 12, got %d", len(day12))
	}
	if day12[0].MerchantName != "OXXO" || day12[0].Amount != 15 {
		t.Errorf("day 12 = %+v, want OXXO with amount 15", day12[0])
	}

	if got := ExpensesOnDay(expenses, 1); len(got) != 0 {
		t.Errorf("expected empty slice for day 1, got %d items", len(got))
	}
	if ExpensesOnDay(expenses, 1) == nil {
		t.Error("empty result should be a non-nil slice")
	}
}

func TestAggregateByCategory(t *testing.T) {
	charges := ChargeList{
		{MerchantName: "NETFLIX", Kind: Monthly, DayOfMonth: 19, AverageAmount: 11.62},
		{MerchantName: "OXXO", Kind: Monthly, DayOfMonth: 12, AverageAmount: 15.2453333333333},
	}
	buckets := AggregateByCategory(Derive(charges))

	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}
	// First-encounter order: NETFLIX precedes OXXO in the snapshot.
	if buckets[0].Category != CategorySubscriptions || buckets[0].TotalAmount != 12 || buckets[0].MemberCount != 1 {
		t.Errorf("bucket 0 = %+v, want suscripciones total 12 count 1", buckets[0])
	}
	if buckets[1].Category != CategoryShopping || buckets[1].TotalAmount != 15 || buckets[1].MemberCount != 1 {
		t.Errorf("bucket 1 = %+v, want compras total 15 count 1", buckets[1])
	}
	if buckets[0].DisplayName != "Suscripciones" {
		t.Errorf("display name = %q, want Suscripciones", buckets[0].DisplayName)
	}
}

// Bucket totals always re-add to the plain expense sum.
func TestAggregateTotalsMatchExpenseSum(t *testing.T) {
	expenses := Derive(sampleCharges())

	var expenseSum, bucketSum int64
	for _, e := range expenses {
		expenseSum += e.Amount
	}
	for _, b := range AggregateByCategory(expenses) {
		bucketSum += b.TotalAmount
	}
	if expenseSum != bucketSum {
		t.Errorf("bucket sum %d != expense sum %d", bucketSum, expenseSum)
	}
}

func TestMonthlyTotals(t *testing.T) {
	expenses := Derive(sampleCharges())
	var sum int64
	for _, e := range expenses {
		sum += e.Amount
	}

	doubled := MonthlyTotals(expenses, true)
	if doubled.FixedTotal != sum || doubled.VariableTotal != sum {
		t.Errorf("totals = %+v, want fixed and variable both %d", doubled, sum)
	}
	// Regression: the observed policy double-counts every charge.
	if doubled.GrandTotal != 2*sum {
		t.Errorf("grandTotal = %d, want %d", doubled.GrandTotal, 2*sum)
	}

	plain := MonthlyTotals(expenses, false)
	if plain.GrandTotal != sum {
		t.Errorf("grandTotal without double counting = %d, want %d", plain.GrandTotal, sum)
	}
}

func TestMonthlyTotalsEmpty(t *testing.T) {
	tot := MonthlyTotals(nil, true)
	if tot.FixedTotal != 0 || tot.VariableTotal != 0 || tot.GrandTotal != 0 {
		t.Errorf("empty snapshot totals = %+v, want zeros", tot)
	}
}

func TestPercentOfTotal(t *testing.T) {
	if got := PercentOfTotal(50, 0); got != 0 {
		t.Errorf("zero total should yield 0%%, got %v", got)
	}
	if got := PercentOfTotal(25, 100); got != 25 {
		t.Errorf("PercentOfTotal(25, 100) = %v, want 25", got)
	}
}

func TestClampDueDay(t *testing.T) {
	tests := []struct {
		name  string
		day   int
		year  int
		month time.Month
		want  int
	}{
		{"31 in 30-day month", 31, 2024, time.April, 30},
		{"31 in 31-day month", 31, 2024, time.March, 31},
		{"29 in leap february", 29, 2024, time.February, 29},
		{"29 in plain february", 29, 2025, time.February, 28},
		{"mid-month untouched", 15, 2024, time.April, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampDueDay(tt.day, tt.year, tt.month); got != tt.want {
				t.Errorf("ClampDueDay(%d, %d, %v) = %d, want %d", tt.day, tt.year, tt.month, got, tt.want)
			}
		})
	}
}
