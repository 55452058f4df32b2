package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"heybanco/internal/core"
	"heybanco/internal/sources/memory"
)

func newTestService() *AnalysisService {
	store := memory.New()
	return NewAnalysisService(store, store, store, AnalysisConfig{
		DoubleCountVariable: true,
		HorizonDays:         7,
		UpcomingLimit:       4,
	})
}

func TestRecurringExpenses(t *testing.T) {
	svc := newTestService()

	expenses, err := svc.RecurringExpenses(context.Background())
	if err != nil {
		t.Fatalf("RecurringExpenses: %v", err)
	}
	if len(expenses) != 15 {
		t.Fatalf("got %d expenses, want 15", len(expenses))
	}
	if expenses[0].MerchantName != "OXXO" || expenses[0].ID != 1 {
		t.Errorf("expenses[0] = %+v", expenses[0])
	}
	if expenses[14].MerchantName != "NETFLIX" || expenses[14].ID != 15 {
		t.Errorf("expenses[14] = %+v", expenses[14])
	}
}

func TestCalendarSummary(t *testing.T) {
	svc := newTestService()
	ref := time.Date(2026, time.August, 12, 10, 0, 0, 0, time.UTC)

	summary, err := svc.CalendarSummary(context.Background(), ref)
	if err != nil {
		t.Fatalf("CalendarSummary: %v", err)
	}

	if summary.Year != 2026 || summary.Month != time.August || summary.Today != 12 {
		t.Errorf("reference date = %d-%v today %d", summary.Year, summary.Month, summary.Today)
	}
	if summary.DaysInMonth != 31 {
		t.Errorf("DaysInMonth = %d, want 31", summary.DaysInMonth)
	}

	if summary.Totals.FixedTotal != 611 {
		t.Errorf("FixedTotal = %d, want 611", summary.Totals.FixedTotal)
	}
	if summary.Totals.GrandTotal != 1222 {
		t.Errorf("GrandTotal = %d, want 1222 (doubled)", summary.Totals.GrandTotal)
	}

	// Bucket order follows first encounter: OXXO is shopping, MI ATT is
	// services, SPOTIFY is subscriptions.
	if len(summary.Buckets) == 0 || summary.Buckets[0].Category != core.CategoryShopping {
		t.Errorf("first bucket = %+v, want compras", summary.Buckets)
	}

	var pctSum float64
	for _, share := range summary.Distribution {
		pctSum += share.Percent
	}
	// With doubling on, the shares cover half the grand total.
	if pctSum < 49.9 || pctSum > 50.1 {
		t.Errorf("distribution sums to %.2f%%, want ~50%%", pctSum)
	}

	wantUpcoming := []string{"OXXO", "FARMACIAS GUADALAJARA", "CINEPOLIS", "IZZI"}
	if len(summary.Upcoming) != len(wantUpcoming) {
		t.Fatalf("got %d upcoming, want %d", len(summary.Upcoming), len(wantUpcoming))
	}
	for i, want := range wantUpcoming {
		if summary.Upcoming[i].MerchantName != want {
			t.Errorf("upcoming[%d] = %q, want %q", i, summary.Upcoming[i].MerchantName, want)
		}
	}
	if summary.Upcoming[0].Status != core.StatusDueToday || summary.Upcoming[0].DaysUntil != 0 {
		t.Errorf("upcoming[0] = %+v, want due today", summary.Upcoming[0])
	}
	if summary.Upcoming[2].Status != core.StatusUpcoming || summary.Upcoming[2].DaysUntil != 3 {
		t.Errorf("upcoming[2] = %+v, want proximo in 3 days", summary.Upcoming[2])
	}
}

func TestDaySummary(t *testing.T) {
	svc := newTestService()

	day, err := svc.DaySummary(context.Background(), 12)
	if err != nil {
		t.Fatalf("DaySummary: %v", err)
	}
	if len(day.Expenses) != 2 {
		t.Fatalf("got %d expenses on day 12, want 2", len(day.Expenses))
	}
	if day.Expenses[0].MerchantName != "OXXO" || day.Expenses[1].MerchantName != "FARMACIAS GUADALAJARA" {
		t.Errorf("day 12 expenses = %+v", day.Expenses)
	}
	if day.Total != 27 {
		t.Errorf("day 12 total = %d, want 27", day.Total)
	}

	empty, err := svc.DaySummary(context.Background(), 3)
	if err != nil {
		t.Fatalf("DaySummary(3): %v", err)
	}
	if len(empty.Expenses) != 0 || empty.Total != 0 {
		t.Errorf("day 3 = %+v, want empty", empty)
	}

	if _, err := svc.DaySummary(context.Background(), 32); err == nil {
		t.Error("expected error for day 32")
	}
}

func TestSpendReview(t *testing.T) {
	svc := newTestService()

	review, err := svc.SpendReview(context.Background())
	if err != nil {
		t.Fatalf("SpendReview: %v", err)
	}
	if len(review.Series) != 12 {
		t.Fatalf("got %d months, want 12", len(review.Series))
	}
	if review.Summary.BiggestIncrease.Month != 3 {
		t.Errorf("BiggestIncrease.Month = %d, want 3 (Marzo)", review.Summary.BiggestIncrease.Month)
	}
	if review.Summary.AverageMonthlyAmount.Cents == 0 {
		t.Error("AverageMonthlyAmount should not be zero")
	}
}

func TestOverview(t *testing.T) {
	svc := newTestService()
	ref := time.Date(2026, time.August, 12, 0, 0, 0, 0, time.UTC)

	overview, err := svc.Overview(context.Background(), ref)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if overview.Calendar == nil || len(overview.Calendar.Expenses) != 15 {
		t.Error("overview calendar missing expenses")
	}
	if overview.Spend == nil || len(overview.Spend.Series) != 12 {
		t.Error("overview spend review missing series")
	}
	if len(overview.Goals) != 3 {
		t.Errorf("got %d goals, want 3", len(overview.Goals))
	}
}

type failingSource struct{ err error }

func (f failingSource) FetchCharges(context.Context) (core.ChargeList, error)  { return nil, f.err }
func (f failingSource) MonthlySpend(context.Context) ([]core.MonthSpend, error) { return nil, f.err }
func (f failingSource) ListGoals(context.Context) ([]core.Goal, error)          { return nil, f.err }

func TestOverviewPropagatesSourceError(t *testing.T) {
	src := failingSource{err: errors.New("backend down")}
	svc := NewAnalysisService(src, src, src, AnalysisConfig{})

	if _, err := svc.Overview(context.Background(), time.Now()); err == nil {
		t.Fatal("expected error from failing source")
	}
}
