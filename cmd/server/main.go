package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/parseldesk/backoffice/internal/config"
	"github.com/parseldesk/backoffice/internal/repository/mongodb"
	sheetsrepo "github.com/parseldesk/backoffice/internal/repository/sheets"
	"github.com/parseldesk/backoffice/internal/scheduler"
	"github.com/parseldesk/backoffice/internal/server/handlers"
	"github.com/parseldesk/backoffice/internal/server/router"
	agentsvc "github.com/parseldesk/backoffice/internal/service/agents"
	authsvc "github.com/parseldesk/backoffice/internal/service/auth"
	collectionsvc "github.com/parseldesk/backoffice/internal/service/collections"
	dcsvc "github.com/parseldesk/backoffice/internal/service/dcs"
	digestsvc "github.com/parseldesk/backoffice/internal/service/digest"
	expensesvc "github.com/parseldesk/backoffice/internal/service/expenses"
	tasksvc "github.com/parseldesk/backoffice/internal/service/tasks"
	"github.com/parseldesk/backoffice/pkg/clients/webhook"
	"github.com/parseldesk/backoffice/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := mongodb.New(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	authService := authsvc.NewService(store.Users(), cfg.Auth, baseLogger.Named("svc.auth"))
	dcService := dcsvc.NewService(store.DCs(), baseLogger.Named("svc.dcs"))
	collectionService := collectionsvc.NewService(store.Collections(), store.Agents(), store.DCs(), baseLogger.Named("svc.collections"))
	agentService := agentsvc.NewService(store.Agents(), store.Collections(), store.DCs(), baseLogger.Named("svc.agents"))
	expenseService := expensesvc.NewService(store.Expenses(), baseLogger.Named("svc.expenses"))
	taskService := tasksvc.NewService(store.Tasks(), baseLogger.Named("svc.tasks"))

	// Optional digest sinks.
	var exporter sheetsrepo.Exporter
	if cfg.SheetsEnabled() {
		sheetExporter, err := sheetsrepo.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		exporter = sheetExporter
		baseLogger.Info("sheets export enabled")
	}

	var notifier webhook.Client
	if cfg.Digest.WebhookURL != "" {
		notifier = webhook.NewClient(cfg.Digest.WebhookURL)
		baseLogger.Info("digest webhook enabled")
	}

	digestService := digestsvc.NewService(collectionService, store.DCs(), exporter, notifier, baseLogger.Named("svc.digest"))

	engine := router.New(router.Handlers{
		Auth:        handlers.NewAuthHandler(authService, baseLogger.Named("handlers.auth")),
		DCs:         handlers.NewDCHandler(dcService, baseLogger.Named("handlers.dcs")),
		Agents:      handlers.NewAgentHandler(agentService, baseLogger.Named("handlers.agents")),
		Collections: handlers.NewCollectionHandler(collectionService, baseLogger.Named("handlers.collections")),
		Expenses:    handlers.NewExpenseHandler(expenseService, baseLogger.Named("handlers.expenses")),
		Tasks:       handlers.NewTaskHandler(taskService, baseLogger.Named("handlers.tasks")),
	}, authService, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Digest, digestService, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
