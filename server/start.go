package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cachepackage "todo-service/cache"
	"todo-service/config"
	"todo-service/database"
	"todo-service/models"
	"todo-service/repository"
	"todo-service/services"

	"github.com/jmoiron/sqlx"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// InitLogger configures the process-wide logger
func InitLogger() {
	logger.Init(logger.LoggerConfig{
		CallerKey:  "file",
		TimeKey:    "timestamp",
		CallerSkip: 1,
	})
}

// NewServices wires repositories and services over an open database
func NewServices(dbConn *sqlx.DB, cache services.Cache, cfg *config.Config) Services {
	store := repository.NewStore(dbConn)
	mapper := models.NewMapper(cfg.Server.BaseURL)

	return Services{
		Users: services.NewUserService(store, mapper, services.UserOptions{
			BcryptCost: cfg.Security.BcryptCost,
			Cache:      cache,
			CacheTTL:   cfg.Cache.TTL,
		}),
		Lists: services.NewToDoListService(store, mapper),
		Tasks: services.NewTaskService(store, mapper),
	}
}

// StartServer runs the HTTP API until ctx is cancelled or the process
// receives SIGINT/SIGTERM
func StartServer(ctx context.Context, cfg *config.Config) error {
	InitLogger()
	logger.Info("Starting todo service...")

	dbConn, err := database.InitializeDatabase(cfg.Database)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	cacheStore, err := cachepackage.InitializeCache(cfg.Cache)
	if err != nil {
		return err
	}
	defer cacheStore.Close()

	var userCache services.Cache
	if cacheStore != nil {
		userCache = cacheStore
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      NewRouter(dbConn, NewServices(dbConn, userCache, cfg)),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  time.Minute,
	}
	return run(ctx, srv, cfg.Server.ShutdownTimeout)
}

func run(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Todo service listening", zap.String("addr", srv.Addr))
		logger.Info("Health check: GET /health")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-ctx.Done():
		logger.Info("Context cancelled, shutting down server")
	case sig := <-quit:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			logger.Error("Server failed to start", zap.Error(err))
		}
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	logger.Info("Server exited gracefully")
	return nil
}
