package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"heybanco/internal/core"
	"heybanco/internal/sources"
)

// AnalysisConfig tunes the derived views.
type AnalysisConfig struct {
	// DoubleCountVariable keeps the grand total equal to fixed plus
	// variable, which counts every charge twice. See core.MonthlyTotals.
	DoubleCountVariable bool
	HorizonDays         int
	UpcomingLimit       int
}

// AnalysisService turns the raw charge snapshot and spend history into the
// dashboard views.
type AnalysisService struct {
	charges sources.ChargeSource
	history sources.SpendHistoryReader
	goals   sources.GoalLister
	cfg     AnalysisConfig
}

func NewAnalysisService(charges sources.ChargeSource, history sources.SpendHistoryReader, goals sources.GoalLister, cfg AnalysisConfig) *AnalysisService {
	return &AnalysisService{
		charges: charges,
		history: history,
		goals:   goals,
		cfg:     cfg,
	}
}

// CategoryShare is one slice of the category distribution.
type CategoryShare struct {
	Category    core.Category
	DisplayName string
	Amount      int64
	Percent     float64
}

// UpcomingPayment is an upcoming expense annotated with its closeness to
// the reference day.
type UpcomingPayment struct {
	core.CategorizedExpense
	DaysUntil int
	Status    core.PaymentStatus
}

// CalendarSummary is everything the monthly calendar view needs for the
// month containing the reference date.
type CalendarSummary struct {
	Year         int
	Month        time.Month
	Today        int
	DaysInMonth  int
	Expenses     []core.CategorizedExpense
	Buckets      []core.CategoryBucket
	Totals       core.Totals
	Distribution []CategoryShare
	Upcoming     []UpcomingPayment
}

// DaySummary lists the charges due on one day of the month.
type DaySummary struct {
	Day      int
	Expenses []core.CategorizedExpense
	Total    int64
}

// SpendReview pairs the monthly series with its derived figures.
type SpendReview struct {
	Series  []core.MonthSpend
	Summary core.SpendSummary
}

// Overview bundles the whole dashboard payload.
type Overview struct {
	Calendar *CalendarSummary
	Spend    *SpendReview
	Goals    []core.Goal
}

// Charges returns the raw ordered snapshot.
func (s *AnalysisService) Charges(ctx context.Context) (core.ChargeList, error) {
	charges, err := s.charges.FetchCharges(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch charges: %w", err)
	}
	return charges, nil
}

// RecurringExpenses fetches the snapshot and derives categorized expenses.
// Sources reject malformed entries at ingestion, so the snapshot is taken
// as-is here.
func (s *AnalysisService) RecurringExpenses(ctx context.Context) ([]core.CategorizedExpense, error) {
	charges, err := s.charges.FetchCharges(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch charges: %w", err)
	}
	return core.Derive(charges), nil
}

// CalendarSummary builds the month view for the date's month. The
// reference date is explicit; nothing here reads the clock.
func (s *AnalysisService) CalendarSummary(ctx context.Context, ref time.Time) (*CalendarSummary, error) {
	expenses, err := s.RecurringExpenses(ctx)
	if err != nil {
		return nil, err
	}
	return s.summarize(expenses, ref), nil
}

func (s *AnalysisService) summarize(expenses []core.CategorizedExpense, ref time.Time) *CalendarSummary {
	year, month, today := ref.Year(), ref.Month(), ref.Day()

	buckets := core.AggregateByCategory(expenses)
	totals := core.MonthlyTotals(expenses, s.cfg.DoubleCountVariable)

	distribution := make([]CategoryShare, 0, len(buckets))
	for _, b := range buckets {
		distribution = append(distribution, CategoryShare{
			Category:    b.Category,
			DisplayName: b.DisplayName,
			Amount:      b.TotalAmount,
			Percent:     core.PercentOfTotal(b.TotalAmount, totals.GrandTotal),
		})
	}

	return &CalendarSummary{
		Year:         year,
		Month:        month,
		Today:        today,
		DaysInMonth:  core.DaysInMonth(year, month),
		Expenses:     expenses,
		Buckets:      buckets,
		Totals:       totals,
		Distribution: distribution,
		Upcoming:     s.upcoming(expenses, today),
	}
}

func (s *AnalysisService) upcoming(expenses []core.CategorizedExpense, today int) []UpcomingPayment {
	due := core.Upcoming(expenses, core.UpcomingOptions{
		Today:       today,
		HorizonDays: s.cfg.HorizonDays,
		Limit:       s.cfg.UpcomingLimit,
	})

	out := make([]UpcomingPayment, 0, len(due))
	for _, e := range due {
		out = append(out, UpcomingPayment{
			CategorizedExpense: e,
			DaysUntil:          core.DaysUntil(e.DueDay, today),
			Status:             core.StatusFor(e.DueDay, today),
		})
	}
	return out
}

// DaySummary returns the charges due on a specific day of the displayed
// month. Day overflow against short months is the caller's concern; here
// the day is matched exactly.
func (s *AnalysisService) DaySummary(ctx context.Context, day int) (*DaySummary, error) {
	if day < 1 || day > 31 {
		return nil, fmt.Errorf("day %d out of range", day)
	}

	expenses, err := s.RecurringExpenses(ctx)
	if err != nil {
		return nil, err
	}

	onDay := core.ExpensesOnDay(expenses, day)
	var total int64
	for _, e := range onDay {
		total += e.Amount
	}

	return &DaySummary{Day: day, Expenses: onDay, Total: total}, nil
}

// SpendReview loads the monthly series and summarizes it.
func (s *AnalysisService) SpendReview(ctx context.Context) (*SpendReview, error) {
	series, err := s.history.MonthlySpend(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch monthly spend: %w", err)
	}
	return &SpendReview{Series: series, Summary: core.SummarizeSpend(series)}, nil
}

// Goals lists the configured savings goals.
func (s *AnalysisService) Goals(ctx context.Context) ([]core.Goal, error) {
	goals, err := s.goals.ListGoals(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch goals: %w", err)
	}
	return goals, nil
}

// Overview assembles the full dashboard payload, fetching the three
// sources concurrently.
func (s *AnalysisService) Overview(ctx context.Context, ref time.Time) (*Overview, error) {
	var (
		charges core.ChargeList
		series  []core.MonthSpend
		goals   []core.Goal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		charges, err = s.charges.FetchCharges(gctx)
		if err != nil {
			return fmt.Errorf("fetch charges: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		series, err = s.history.MonthlySpend(gctx)
		if err != nil {
			return fmt.Errorf("fetch monthly spend: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		goals, err = s.goals.ListGoals(gctx)
		if err != nil {
			return fmt.Errorf("fetch goals: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Overview{
		Calendar: s.summarize(core.Derive(charges), ref),
		Spend:    &SpendReview{Series: series, Summary: core.SummarizeSpend(series)},
		Goals:    goals,
	}, nil
}
