package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"heybanco/internal/amqp"
	"heybanco/internal/config"
	applog "heybanco/internal/log"
	"heybanco/internal/services"
	"heybanco/internal/sources"
	"heybanco/internal/sources/httpsource"
	"heybanco/internal/sources/memory"
	"heybanco/internal/storage"
)

func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentScheduler)
	applog.SetDefault(logger)

	logger.Info("Starting reminder-scheduler")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	var charges sources.ChargeSource
	switch cfg.DataBackend {
	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite repository", applog.FieldError, err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer repo.Close()
		charges = repo
	case "http":
		charges = httpsource.New(cfg.ChargesURL, cfg.ChargesFetchTimeout)
	default:
		charges = memory.New()
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	planner := services.NewReminderPlanner(charges, amqpClient, cfg.ReminderHorizonDays, cfg.ReminderLimit)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runPass := func() {
		passCtx, passCancel := context.WithTimeout(ctx, time.Minute)
		defer passCancel()

		published, err := planner.Run(passCtx, time.Now())
		if err != nil {
			logger.Error("Reminder pass failed", applog.FieldError, err)
			return
		}
		logger.Info("Reminder pass finished", "published", published)
	}

	// One pass at startup, then on the interval.
	runPass()

	ticker := time.NewTicker(cfg.ReminderInterval)
	defer ticker.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			return
		case <-ticker.C:
			runPass()
		}
	}
}
