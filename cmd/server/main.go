package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"gestock/internal/config"
	"gestock/internal/repository/mongodb"
	"gestock/internal/repository/sheets"
	"gestock/internal/scheduler"
	"gestock/internal/server/handlers"
	"gestock/internal/server/router"
	"gestock/internal/service/inventory"
	"gestock/internal/service/syncsvc"
	"gestock/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	var mirror sheets.Mirror
	if cfg.CloudSyncEnabled() {
		mirror, err = sheets.NewGoogleSheetMirror(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets mirror", zap.Error(err))
		}
	} else {
		baseLogger.Warn("google sheets credentials missing, cloud sync disabled")
	}

	inventorySvc := inventory.NewService(mongoRepo, baseLogger.Named("svc.inventory"))
	syncSvc := syncsvc.NewService(mongoRepo, mirror, cfg.Sync, baseLogger.Named("svc.sync"))

	stockHandler := handlers.NewStockHandler(inventorySvc, baseLogger.Named("handlers.stock"))
	syncHandler := handlers.NewSyncHandler(syncSvc, baseLogger.Named("handlers.sync"))
	engine := router.New(stockHandler, syncHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Sync, syncSvc, baseLogger.Named("scheduler"))
	if cfg.CloudSyncEnabled() {
		sched.Start()
		defer sched.Stop()
	}

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
