package worker

import (
	"context"
	"fmt"
	"log/slog"
)

// ReminderLog records delivered reminders so repeat messages for the same
// merchant and date collapse into one row.
type ReminderLog interface {
	RecordReminder(ctx context.Context, merchant string, dueDay int, amount int64, remindedOn string) (bool, error)
}

// ReminderMessage is the consumed payload, decoupled from the transport.
type ReminderMessage struct {
	Merchant   string
	DueDay     int
	Amount     int64
	DaysUntil  int
	Status     string
	RemindedOn string
}

// ReminderWorker persists consumed payment reminders. The scheduler may
// publish the same reminder more than once per day; the log keeps exactly
// one entry per merchant and date.
type ReminderWorker struct {
	log ReminderLog
}

func NewReminderWorker(log ReminderLog) *ReminderWorker {
	return &ReminderWorker{log: log}
}

// HandleReminder records one reminder. Duplicates are acknowledged but not
// re-recorded; an error requeues the message on the caller's side.
func (w *ReminderWorker) HandleReminder(ctx context.Context, msg ReminderMessage) error {
	if msg.Merchant == "" {
		return fmt.Errorf("reminder without merchant")
	}
	if msg.RemindedOn == "" {
		return fmt.Errorf("reminder for %q without date", msg.Merchant)
	}

	inserted, err := w.log.RecordReminder(ctx, msg.Merchant, msg.DueDay, msg.Amount, msg.RemindedOn)
	if err != nil {
		return fmt.Errorf("record reminder: %w", err)
	}

	if !inserted {
		slog.InfoContext(ctx, "Duplicate reminder ignored",
			"merchant", msg.Merchant,
			"date", msg.RemindedOn)
		return nil
	}

	slog.InfoContext(ctx, "Reminder recorded",
		"merchant", msg.Merchant,
		"due_day", msg.DueDay,
		"days_until", msg.DaysUntil,
		"status", msg.Status,
		"date", msg.RemindedOn)

	return nil
}
