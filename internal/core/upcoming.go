package core

import "sort"

// PaymentStatus labels how close a due day is to the reference day.
type PaymentStatus string

const (
	StatusOverdue  PaymentStatus = "vencido"
	StatusDueToday PaymentStatus = "hoy"
	StatusUpcoming PaymentStatus = "proximo"
)

// DefaultUpcomingLimit caps the reminder list the way the payments widget
// does.
const DefaultUpcomingLimit = 4

// UpcomingOptions controls the reminder window. Today is the 1-based day
// of the displayed month and must be passed in explicitly; the core never
// reads the clock.
type UpcomingOptions struct {
	Today       int
	HorizonDays int
	Limit       int
	// IncludeOverdue admits items whose due day already passed. The
	// source filter excluded them, which left its overdue badge
	// unreachable; the option makes that state reachable without
	// changing the default behavior.
	IncludeOverdue bool
}

// Upcoming returns reminder-enabled expenses due within the horizon,
// ascending by due day, capped at opts.Limit. With IncludeOverdue false
// (the observed behavior) an item qualifies when
// 0 <= dueDay-today <= horizon; there is no cross-month wraparound.
func Upcoming(expenses []CategorizedExpense, opts UpcomingOptions) []CategorizedExpense {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}

	out := []CategorizedExpense{}
	for _, e := range expenses {
		if !e.ReminderEnabled {
			continue
		}
		daysUntil := e.DueDay - opts.Today
		if daysUntil > opts.HorizonDays {
			continue
		}
		if daysUntil < 0 && !opts.IncludeOverdue {
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDay < out[j].DueDay
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// DaysUntil returns dueDay-today; negative means overdue.
func DaysUntil(dueDay, today int) int {
	return dueDay - today
}

// StatusFor labels an expense relative to today.
func StatusFor(dueDay, today int) PaymentStatus {
	switch d := DaysUntil(dueDay, today); {
	case d < 0:
		return StatusOverdue
	case d == 0:
		return StatusDueToday
	default:
		return StatusUpcoming
	}
}
