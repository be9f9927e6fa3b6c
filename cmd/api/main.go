package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/finance-insights/internal/config"
	"github.com/Dan9191/finance-insights/internal/handler"
	"github.com/Dan9191/finance-insights/internal/observability"
	"github.com/Dan9191/finance-insights/internal/repository"
	"github.com/Dan9191/finance-insights/internal/scheduler"
	"github.com/Dan9191/finance-insights/internal/service"
	"github.com/Dan9191/finance-insights/internal/utils/email"
	_ "github.com/lib/pq"
)

func main() {
	// Initialize logger
	logger := observability.NewLogger(os.Getenv("LOG_LEVEL"), os.Stdout)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	spending, err := service.ParseMonthPolicy(cfg.SpendingMonthPolicy, cfg.SpendingMonth)
	if err != nil {
		logger.Fatalf("Invalid spending month policy: %v", err)
	}
	savings, err := service.ParseMonthPolicy(cfg.SavingsMonthPolicy, cfg.SavingsMonth)
	if err != nil {
		logger.Fatalf("Invalid savings month policy: %v", err)
	}

	// Initialize data source
	var src repository.Source
	switch cfg.DataSource {
	case config.SourcePostgres:
		db, err := sql.Open("postgres", cfg.DBConn)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Fatalf("Failed to ping database: %v", err)
		}
		src = repository.NewRepository(db)
	default:
		src = repository.NewFileSource(cfg.DataDir)
	}

	var notifier repository.Notifier
	if cfg.AlertsEnabled() {
		notifier = email.NewSender(cfg, logger)
	}

	// A failed first load is not fatal: queries get the data unavailable answer
	// until a reload succeeds.
	store := repository.NewStore(src, logger, notifier)
	loadCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := store.Reload(loadCtx); err != nil {
		logger.Errorf("Initial data load failed, serving data unavailable responses: %v", err)
	}
	cancel()

	if cfg.ReloadSchedule != "" {
		sched, err := scheduler.New(cfg.ReloadSchedule, store, logger, 30*time.Second)
		if err != nil {
			logger.Fatalf("Failed to schedule reloads: %v", err)
		}
		sched.Start()
		defer sched.Stop()
		logger.Infof("Dataset reload scheduled (%s), next at %s", cfg.ReloadSchedule, sched.Next().Format(time.RFC3339))
	}

	// Initialize layers
	svc := service.NewService(store, logger,
		service.WithMonthPolicies(spending, savings),
		service.WithCurrency(cfg.CurrencySymbol),
	)
	h := handler.NewHandler(svc, store, logger)
	r := handler.NewRouter(h, handler.RouterConfig{
		JWTSecret:      cfg.JWTSecret,
		AdminKeyHash:   cfg.AdminKeyHash,
		AllowedOrigins: cfg.AllowedOrigins,
	}, logger)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Errorf("Shutdown failed: %v", err)
		}
	}()

	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("Server failed: %v", err)
	}
	logger.Info("Server stopped")
}
