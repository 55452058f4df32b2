package core

// MonthNames holds the Spanish month labels used on the wire, indexed by
// month-1.
var MonthNames = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

type (
	// MonthSpend is one point of the historical spend series.
	MonthSpend struct {
		Month  int // 1-12
		Amount Money
	}

	// MonthDelta names the month with the largest month-over-month
	// increase.
	MonthDelta struct {
		Month         int
		PercentChange float64
	}

	// SpendSummary is the derived view of a year of spend history.
	SpendSummary struct {
		AveragePercentChange float64
		AverageMonthlyAmount Money
		BiggestIncrease      MonthDelta
		MostActiveQuarter    string
	}

	// Goal is a savings goal with its projected percentage change.
	Goal struct {
		Name             string
		Description      string
		StartingAmount   Money
		ChangePercentage float64
	}
)

// quarterLabels follow the display convention of the spending review.
var quarterLabels = [4]string{
	"Q1 (Enero-Marzo)",
	"Q2 (Abril-Junio)",
	"Q3 (Julio-Septiembre)",
	"Q4 (Octubre-Diciembre)",
}

// SummarizeSpend derives the year-in-review figures from the monthly
// series. An empty series yields a zero summary; percent changes guard
// against zero denominators.
func SummarizeSpend(series []MonthSpend) SpendSummary {
	var s SpendSummary
	if len(series) == 0 {
		return s
	}

	var totalCents int64
	for _, m := range series {
		totalCents += m.Amount.Cents
	}
	s.AverageMonthlyAmount = Money{Cents: totalCents / int64(len(series))}

	var pctSum float64
	pctCount := 0
	for i := 1; i < len(series); i++ {
		prev := series[i-1].Amount.Cents
		if prev == 0 {
			continue
		}
		pct := float64(series[i].Amount.Cents-prev) / float64(prev) * 100
		pctSum += pct
		pctCount++
		if pct > s.BiggestIncrease.PercentChange {
			s.BiggestIncrease = MonthDelta{Month: series[i].Month, PercentChange: pct}
		}
	}
	if pctCount > 0 {
		s.AveragePercentChange = pctSum / float64(pctCount)
	}

	// Most active quarter by summed spend.
	var quarters [4]int64
	for _, m := range series {
		if m.Month >= 1 && m.Month <= 12 {
			quarters[(m.Month-1)/3] += m.Amount.Cents
		}
	}
	best := 0
	for i := 1; i < 4; i++ {
		if quarters[i] > quarters[best] {
			best = i
		}
	}
	s.MostActiveQuarter = quarterLabels[best]

	return s
}
