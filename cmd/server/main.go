package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/retrocalc/internal/config"
	"github.com/mamadbah2/retrocalc/internal/repository/mongodb"
	"github.com/mamadbah2/retrocalc/internal/repository/sheets"
	"github.com/mamadbah2/retrocalc/internal/repository/sqlite"
	"github.com/mamadbah2/retrocalc/internal/repository/store"
	"github.com/mamadbah2/retrocalc/internal/scheduler"
	"github.com/mamadbah2/retrocalc/internal/server/handlers"
	"github.com/mamadbah2/retrocalc/internal/server/router"
	animationsvc "github.com/mamadbah2/retrocalc/internal/service/animation"
	calculatorsvc "github.com/mamadbah2/retrocalc/internal/service/calculator"
	historysvc "github.com/mamadbah2/retrocalc/internal/service/history"
	"github.com/mamadbah2/retrocalc/pkg/clients/webhook"
	"github.com/mamadbah2/retrocalc/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	kv, closeKV := openKV(cfg, baseLogger)
	defer closeKV()

	records := store.NewRecordStore(kv, cfg.History.Key, baseLogger.Named("repo.history"))

	// Leave the interface nil when no webhook is configured.
	var notifier calculatorsvc.Notifier
	if cfg.Webhook.URL != "" {
		notifier = webhook.NewClient(cfg.Webhook.URL, cfg.Webhook.Timeout)
		baseLogger.Info("history webhook enabled")
	}

	calculatorSvc := calculatorsvc.NewService(calculatorsvc.NewEvaluator(), records, notifier, cfg.UI.CursorBlink, baseLogger.Named("svc.calculator"))
	historySvc := historysvc.NewService(records, cfg.History.Limit, baseLogger.Named("svc.history"))
	animationSvc := animationsvc.NewService(cfg.UI.AnimationInterval, baseLogger.Named("svc.animation"))

	var exporter scheduler.HistoryExporter
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		exporter = sheets.NewExporter(sheetsRepo, records, baseLogger.Named("svc.export"))
	} else {
		baseLogger.Info("google sheets export disabled")
	}

	engine := router.New(router.Handlers{
		Calculator: handlers.NewCalculatorHandler(calculatorSvc, baseLogger.Named("handlers.calculator")),
		History:    handlers.NewHistoryHandler(historySvc, baseLogger.Named("handlers.history")),
		Animation:  handlers.NewAnimationHandler(animationSvc, baseLogger.Named("handlers.animation")),
		Screens:    handlers.NewScreenHandler(calculatorSvc, historySvc, animationSvc),
	}, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Scheduler,
		[]scheduler.SessionSweeper{calculatorSvc, historySvc, animationSvc},
		exporter, baseLogger.Named("scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
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
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("store", cfg.Store.Backend))
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

// openKV connects the configured history backend and returns its closer.
func openKV(cfg *config.Config, log *zap.Logger) (store.KV, func()) {
	ctx := context.Background()

	switch cfg.Store.Backend {
	case config.BackendMongoDB:
		repo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			log.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		return repo, func() {
			if err := repo.Close(context.Background()); err != nil {
				log.Error("failed to close mongodb connection", zap.Error(err))
			}
		}
	case config.BackendMemory:
		log.Warn("history is kept in memory and lost on restart")
		return store.NewMemoryKV(), func() {}
	default:
		kv, err := sqlite.Open(ctx, cfg.Store.SQLitePath)
		if err != nil {
			log.Fatal("failed to open sqlite store", zap.Error(err), zap.String("path", cfg.Store.SQLitePath))
		}
		return kv, func() {
			if err := kv.Close(); err != nil {
				log.Error("failed to close sqlite store", zap.Error(err))
			}
		}
	}
}
