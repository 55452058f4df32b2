package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"heybanco/internal/amqp"
	"heybanco/internal/core"
	"heybanco/internal/sources"
)

// ReminderPublisher sends a payment reminder to the queue.
type ReminderPublisher interface {
	PublishPaymentReminder(ctx context.Context, msg *amqp.PaymentReminderMessage) error
}

// ReminderPlanner computes which charges fall due within the horizon and
// publishes one reminder per charge. The worker deduplicates per day, so
// repeated runs on the same day are harmless.
type ReminderPlanner struct {
	charges     sources.ChargeSource
	publisher   ReminderPublisher
	horizonDays int
	limit       int
}

func NewReminderPlanner(charges sources.ChargeSource, publisher ReminderPublisher, horizonDays, limit int) *ReminderPlanner {
	return &ReminderPlanner{
		charges:     charges,
		publisher:   publisher,
		horizonDays: horizonDays,
		limit:       limit,
	}
}

// Run publishes reminders for charges due within the horizon of now.
// Individual publish failures are logged and skipped; the count of
// published reminders is returned.
func (p *ReminderPlanner) Run(ctx context.Context, now time.Time) (int, error) {
	charges, err := p.charges.FetchCharges(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch charges: %w", err)
	}

	today := now.Day()
	due := core.Upcoming(core.Derive(charges), core.UpcomingOptions{
		Today:       today,
		HorizonDays: p.horizonDays,
		Limit:       p.limit,
	})

	remindedOn := now.Format("2006-01-02")
	published := 0
	for _, e := range due {
		daysUntil := core.DaysUntil(e.DueDay, today)
		msg := amqp.NewPaymentReminderMessage(e, daysUntil, core.StatusFor(e.DueDay, today), remindedOn)

		if err := p.publisher.PublishPaymentReminder(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "Failed to publish reminder",
				"merchant", e.MerchantName,
				"due_day", e.DueDay,
				"error", err)
			continue
		}
		published++
	}

	slog.InfoContext(ctx, "Reminder pass completed",
		"due", len(due),
		"published", published,
		"date", remindedOn)

	return published, nil
}
