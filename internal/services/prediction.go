package services

import (
	"context"
	"sort"

	"heybanco/internal/core"
)

// PredictedChargeCount caps the merchant list in the projection view.
const PredictedChargeCount = 5

// PredictedCharge projects one recurring charge a year ahead.
type PredictedCharge struct {
	MerchantName  string
	Category      core.Category
	MonthlyAmount int64
	AnnualAmount  int64
}

// Prediction is the year-ahead projection built from the current
// snapshot: the heaviest charges plus the totals they roll up to.
type Prediction struct {
	TopCharges   []PredictedCharge
	MonthlyTotal int64
	AnnualTotal  int64
}

// PredictedFuture projects the recurring spend a year ahead. Totals are
// the plain monthly sum, not the doubled presentation figure; ranking is
// by monthly amount descending with snapshot order breaking ties.
func (s *AnalysisService) PredictedFuture(ctx context.Context) (*Prediction, error) {
	expenses, err := s.RecurringExpenses(ctx)
	if err != nil {
		return nil, err
	}

	ranked := make([]core.CategorizedExpense, len(expenses))
	copy(ranked, expenses)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount > ranked[j].Amount
	})
	if len(ranked) > PredictedChargeCount {
		ranked = ranked[:PredictedChargeCount]
	}

	p := &Prediction{TopCharges: make([]PredictedCharge, 0, len(ranked))}
	for _, e := range ranked {
		p.TopCharges = append(p.TopCharges, PredictedCharge{
			MerchantName:  e.MerchantName,
			Category:      e.Category,
			MonthlyAmount: e.Amount,
			AnnualAmount:  e.Amount * 12,
		})
	}
	for _, e := range expenses {
		p.MonthlyTotal += e.Amount
	}
	p.AnnualTotal = p.MonthlyTotal * 12

	return p, nil
}
