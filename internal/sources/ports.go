package sources

import (
	"context"

	"heybanco/internal/core"
)

// Ports for outbound adapters.
type (
	// ChargeSource fetches the recurring-charge snapshot from its
	// collaborator. One best-effort call per render pass; callers do
	// not retry.
	ChargeSource interface {
		FetchCharges(ctx context.Context) (core.ChargeList, error)
	}

	// SpendHistoryReader returns the monthly spend series for the
	// year-in-review views.
	SpendHistoryReader interface {
		MonthlySpend(ctx context.Context) ([]core.MonthSpend, error)
	}

	// GoalLister returns the configured savings goals.
	GoalLister interface {
		ListGoals(ctx context.Context) ([]core.Goal, error)
	}
)
