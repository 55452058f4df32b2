// Package memory is the in-process charge source used for local runs and
// tests. It is seeded with the sample dataset of the analysis endpoint so
// the app works without any external collaborator.
package memory

import (
	"context"
	"sync"

	"heybanco/internal/core"
)

type Store struct {
	mu      sync.Mutex
	charges core.ChargeList
	spend   []core.MonthSpend
	goals   []core.Goal
}

// New returns a store seeded with the sample data.
func New() *Store {
	return &Store{
		charges: seedCharges(),
		spend:   seedSpend(),
		goals:   seedGoals(),
	}
}

// NewWithCharges returns a store holding the given snapshot. Used by
// tests and by callers that fetch elsewhere.
func NewWithCharges(charges core.ChargeList) *Store {
	return &Store{charges: charges}
}

// FetchCharges implements sources.ChargeSource.
func (s *Store) FetchCharges(_ context.Context) (core.ChargeList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(core.ChargeList, len(s.charges))
	copy(out, s.charges)
	return out, nil
}

// MonthlySpend implements sources.SpendHistoryReader.
func (s *Store) MonthlySpend(_ context.Context) ([]core.MonthSpend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.MonthSpend, len(s.spend))
	copy(out, s.spend)
	return out, nil
}

// ListGoals implements sources.GoalLister.
func (s *Store) ListGoals(_ context.Context) ([]core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Goal, len(s.goals))
	copy(out, s.goals)
	return out, nil
}

// SetCharges replaces the snapshot.
func (s *Store) SetCharges(charges core.ChargeList) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.charges = charges
}

func seedCharges() core.ChargeList {
	entry := func(name string, day int, amount float64) core.RecurringCharge {
		return core.RecurringCharge{
			MerchantName:  name,
			Kind:          core.Monthly,
			DayOfMonth:    day,
			AverageAmount: amount,
		}
	}
	return core.ChargeList{
		entry("OXXO", 12, 15.2453333333333),
		entry("7 ELEVEN", 16, 7.30888888888889),
		entry("MI ATT", 7, 190.92),
		entry("AMAZON", 20, 8.60222222222222),
		entry("SPOTIFY", 9, 15.06),
		entry("FARMACIAS GUADALAJARA", 12, 12.266),
		entry("CINEPOLIS", 15, 16.5566666666667),
		entry("IZZI", 15, 50.02),
		entry("AMAZON PRIME", 16, 11.62),
		entry("MERCADO PAGO", 17, 82.532),
		entry("MELIMAS", 21, 15.16),
		entry("GOOGLE", 25, 21.28),
		entry("FACEBOOK", 15, 136.536),
		entry("MAX", 26, 14.64),
		entry("NETFLIX", 19, 11.62),
	}
}

func seedSpend() []core.MonthSpend {
	amounts := []float64{
		1104.83, 775.49, 2386.93, 1186.38, 1938.39, 1295.70,
		1845.55, 1517.09, 1910.53, 1735.02, 1691.63, 2097.41,
	}
	spend := make([]core.MonthSpend, len(amounts))
	for i, a := range amounts {
		spend[i] = core.MonthSpend{Month: i + 1, Amount: core.MoneyFromFloat(a)}
	}
	return spend
}

func seedGoals() []core.Goal {
	return []core.Goal{
		{Name: "Fondo de emergencia", Description: "Construir un fondo para 6 meses", StartingAmount: core.MoneyFromFloat(5000), ChangePercentage: 15},
		{Name: "Ahorro para el retiro", Description: "Aumentar aportaciones al retiro", StartingAmount: core.MoneyFromFloat(50000), ChangePercentage: 8},
		{Name: "Reducir deudas", Description: "Liquidar tarjeta de crédito", StartingAmount: core.MoneyFromFloat(8000), ChangePercentage: -25},
	}
}
