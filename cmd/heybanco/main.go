package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"heybanco/internal/chat"
	"heybanco/internal/config"
	apphttp "heybanco/internal/http"
	applog "heybanco/internal/log"
	"heybanco/internal/services"
	"heybanco/internal/sources"
	"heybanco/internal/sources/httpsource"
	"heybanco/internal/sources/memory"
	"heybanco/internal/storage"
)

func main() {
	// Load .env for local development; absent in containers.
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	var (
		charges sources.ChargeSource
		history sources.SpendHistoryReader
		goals   sources.GoalLister
	)

	// The memory store backs history and goals when the selected backend
	// only provides charges.
	store := memory.New()

	switch cfg.DataBackend {
	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite repository", applog.FieldError, err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer repo.Close()
		charges, history, goals = repo, repo, repo
		logger.Info("Initialized SQLite backend", "path", cfg.SQLiteDBPath)
	case "http":
		charges = httpsource.New(cfg.ChargesURL, cfg.ChargesFetchTimeout)
		history, goals = store, store
		logger.Info("Initialized HTTP charge source", "url", cfg.ChargesURL)
	default:
		charges, history, goals = store, store, store
		logger.Info("Initialized memory backend")
	}

	analysis := services.NewAnalysisService(charges, history, goals, services.AnalysisConfig{
		DoubleCountVariable: cfg.DoubleCountVariable,
		HorizonDays:         cfg.ReminderHorizonDays,
		UpcomingLimit:       cfg.ReminderLimit,
	})

	var chatSvc apphttp.ChatCompleter
	if cfg.OpenAIAPIKey != "" {
		chatSvc = chat.NewService(cfg.OpenAIAPIKey, cfg.OpenAIModel, "")
		logger.Info("Chat assistant enabled", "model", cfg.OpenAIModel)
	} else {
		logger.Info("Chat assistant disabled, no API key configured")
	}

	srv := apphttp.NewServer(":"+cfg.Port, analysis, chatSvc)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting heybanco server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
