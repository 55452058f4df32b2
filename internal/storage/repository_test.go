package storage

import (
	"context"
	"path/filepath"
	"testing"

	"heybanco/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "heybanco.db")
	repo, err := NewSQLiteRepository(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	return repo
}

func TestAddAndFetchCharges(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	charges := core.ChargeList{
		{MerchantName: "OXXO", Kind: core.Monthly, DayOfMonth: 12, AverageAmount: 15.25},
		{MerchantName: "NETFLIX", Kind: core.Monthly, DayOfMonth: 19, AverageAmount: 11.62},
	}
	for _, c := range charges {
		if _, err := repo.AddCharge(ctx, c); err != nil {
			t.Fatalf("AddCharge(%q): %v", c.MerchantName, err)
		}
	}

	got, err := repo.FetchCharges(ctx)
	if err != nil {
		t.Fatalf("FetchCharges: %v", err)
	}
	if len(got) != len(charges) {
		t.Fatalf("got %d charges, want %d", len(got), len(charges))
	}
	for i, c := range charges {
		if got[i] != c {
			t.Errorf("charge %d = %+v, want %+v", i, got[i], c)
		}
	}
}

func TestAddChargeRejectsInvalid(t *testing.T) {
	repo := newTestRepo(t)

	bad := core.RecurringCharge{MerchantName: "GYM", Kind: core.Monthly, DayOfMonth: 42, AverageAmount: 1.00}
	if _, err := repo.AddCharge(context.Background(), bad); err == nil {
		t.Fatal("expected error for day 42, got nil")
	}
}

func TestReplaceChargesKeepsOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.AddCharge(ctx, core.RecurringCharge{
		MerchantName: "OLD", Kind: core.Monthly, DayOfMonth: 1, AverageAmount: 1.00,
	}); err != nil {
		t.Fatalf("AddCharge: %v", err)
	}

	replacement := core.ChargeList{
		{MerchantName: "SPOTIFY", Kind: core.Monthly, DayOfMonth: 9, AverageAmount: 15.06},
		{MerchantName: "IZZI", Kind: core.Monthly, DayOfMonth: 15, AverageAmount: 50.02},
	}
	if err := repo.ReplaceCharges(ctx, replacement); err != nil {
		t.Fatalf("ReplaceCharges: %v", err)
	}

	got, err := repo.FetchCharges(ctx)
	if err != nil {
		t.Fatalf("FetchCharges: %v", err)
	}
	if len(got) != 2 || got[0].MerchantName != "SPOTIFY" || got[1].MerchantName != "IZZI" {
		t.Fatalf("unexpected charges after replace: %+v", got)
	}
}

func TestMonthlySpendRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SetMonthlySpend(ctx, 1, core.Money{Cents: 110483}); err != nil {
		t.Fatalf("SetMonthlySpend: %v", err)
	}
	if err := repo.SetMonthlySpend(ctx, 2, core.Money{Cents: 98210}); err != nil {
		t.Fatalf("SetMonthlySpend: %v", err)
	}
	// Upsert overwrites.
	if err := repo.SetMonthlySpend(ctx, 1, core.Money{Cents: 120000}); err != nil {
		t.Fatalf("SetMonthlySpend: %v", err)
	}

	series, err := repo.MonthlySpend(ctx)
	if err != nil {
		t.Fatalf("MonthlySpend: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("got %d months, want 2", len(series))
	}
	if series[0].Month != 1 || series[0].Amount.Cents != 120000 {
		t.Errorf("series[0] = %+v", series[0])
	}
	if series[1].Month != 2 || series[1].Amount.Cents != 98210 {
		t.Errorf("series[1] = %+v", series[1])
	}
}

func TestSetMonthlySpendRejectsBadMonth(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.SetMonthlySpend(context.Background(), 13, core.Money{Cents: 1}); err == nil {
		t.Fatal("expected error for month 13, got nil")
	}
}

func TestGoalsRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	goal := core.Goal{
		Name:             "Fondo de emergencia",
		Description:      "Tres meses de gastos",
		StartingAmount:   core.Money{Cents: 500000},
		ChangePercentage: 2.5,
	}
	if err := repo.AddGoal(ctx, goal); err != nil {
		t.Fatalf("AddGoal: %v", err)
	}

	goals, err := repo.ListGoals(ctx)
	if err != nil {
		t.Fatalf("ListGoals: %v", err)
	}
	if len(goals) != 1 || goals[0] != goal {
		t.Fatalf("goals = %+v, want [%+v]", goals, goal)
	}
}

func TestRecordReminderIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	inserted, err := repo.RecordReminder(ctx, "NETFLIX", 19, 12, "2026-08-17")
	if err != nil {
		t.Fatalf("RecordReminder: %v", err)
	}
	if !inserted {
		t.Error("first RecordReminder should insert")
	}

	inserted, err = repo.RecordReminder(ctx, "NETFLIX", 19, 12, "2026-08-17")
	if err != nil {
		t.Fatalf("RecordReminder repeat: %v", err)
	}
	if inserted {
		t.Error("repeat RecordReminder should be ignored")
	}

	merchants, err := repo.RemindersOn(ctx, "2026-08-17")
	if err != nil {
		t.Fatalf("RemindersOn: %v", err)
	}
	if len(merchants) != 1 || merchants[0] != "NETFLIX" {
		t.Fatalf("merchants = %v, want [NETFLIX]", merchants)
	}
}
