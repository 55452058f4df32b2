package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"heybanco/internal/amqp"
	"heybanco/internal/config"
	applog "heybanco/internal/log"
	"heybanco/internal/storage"
	"heybanco/internal/worker"
)

func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentWorker)
	applog.SetDefault(logger)

	logger.Info("Starting reminder-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	// The reminder log always lives in SQLite, whatever serves the API.
	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", applog.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reminderWorker := worker.NewReminderWorker(repo)

	go func() {
		err := amqpClient.ConsumePaymentReminders(ctx, func(msg *amqp.PaymentReminderMessage) error {
			return reminderWorker.HandleReminder(ctx, worker.ReminderMessage{
				Merchant:   msg.Merchant,
				DueDay:     msg.DueDay,
				Amount:     msg.Amount,
				DaysUntil:  msg.DaysUntil,
				Status:     msg.Status,
				RemindedOn: msg.RemindedOn,
			})
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Message consumption failed", applog.FieldError, err)
		}
		cancel()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	cancel()

	// Give the consumer a moment to finish the in-flight delivery.
	time.Sleep(2 * time.Second)
	logger.Info("Worker shutdown complete")
}
