package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rtx09x/Meow-Mocks/internal/cache"
	"github.com/Rtx09x/Meow-Mocks/internal/config"
	"github.com/Rtx09x/Meow-Mocks/internal/handlers"
	"github.com/Rtx09x/Meow-Mocks/internal/loader"
	"github.com/Rtx09x/Meow-Mocks/internal/repositories/postgres"
	"github.com/Rtx09x/Meow-Mocks/internal/services"
	"github.com/Rtx09x/Meow-Mocks/internal/utils"
	"github.com/Rtx09x/Meow-Mocks/internal/validator"
	"github.com/Rtx09x/Meow-Mocks/pkg"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.NewLogger("", os.Stderr).LogError(err, "Failed to load configuration")
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.Environment, os.Stdout)
	if err := run(cfg, logger); err != nil {
		logger.LogError(err, "Server stopped with error")
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger utils.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slogger := logger.Slog()

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return err
	}
	if err := pkg.AutoMigrate(db); err != nil {
		return err
	}

	// Redis only holds snapshots and a copy of each result, so the service runs without it.
	var cacheService cache.CacheService
	if client, err := pkg.NewRedisClient(ctx, cfg); err != nil {
		logger.Warn("Redis unavailable, running without cache", "error", err)
	} else {
		defer client.Close()
		cacheService = cache.NewRedisCache(client, slogger)
	}

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		return err
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("Failed to close event publisher", "error", err)
		}
	}()

	v := validator.New()
	testLoader := loader.New(loader.Config{
		TestsDir:               cfg.TestsDir,
		DefaultDurationMinutes: cfg.DefaultTestDuration,
		HTTPTimeout:            cfg.HTTPFetchTimeout,
		RemoteHosts:            cfg.RemoteTestHosts,
	}, v, slogger)
	repo := postgres.NewResultPostgreSQL(db)

	sessionService := services.NewSessionService(testLoader, repo, cacheService, publisher, v, slogger,
		services.SessionServiceConfig{
			WarningSeconds: cfg.TimeWarningSeconds,
			SnapshotTTL:    cfg.SnapshotTTL,
		})
	defer sessionService.Shutdown()

	exportService := services.NewExportService(slogger)
	resultService := services.NewResultService(repo, cacheService, exportService, v, slogger, cfg.SnapshotTTL)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handlers.NewRouter(logger, cfg.CORSAllowedOrigins)
	handlers.NewHandlerManager(services.NewServiceManager(sessionService, resultService, exportService), logger).
		SetupRoutes(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "port", cfg.Port, "environment", cfg.Environment, "tests_dir", cfg.TestsDir)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
