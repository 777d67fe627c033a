package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hiennv/logbin/internal/config"
	"github.com/hiennv/logbin/internal/handler"
	"github.com/hiennv/logbin/internal/pkg/logger"
	"github.com/hiennv/logbin/internal/repository"
	"github.com/hiennv/logbin/internal/service"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Initialize Logger
	logger.Init(cfg.Log.Level)
	if logger.ParseLevel(cfg.Log.Level) != slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 3. Initialize Persistence (configured backend > memory)
	kv := openKV(cfg)
	defer kv.Close()

	// 4. The single store instance, owned here and handed to the router
	store := service.NewLogStore(kv,
		service.WithInstance(cfg.Store.Instance),
		service.WithKey(cfg.StorageKey()),
		service.WithCapacity(cfg.Store.Capacity),
	)

	// 5. Setup Router
	r := handler.NewRouter(cfg, store)

	// 6. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("logbin started",
			"port", cfg.Server.Port,
			"instance", cfg.Store.Instance,
			"capacity", cfg.Store.Capacity,
			"storage", cfg.Storage.Driver,
			"capture", cfg.Routes.CapturePrefix,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server listen failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	timeout := time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exiting")
}

// openKV connects the configured backend. Redis and Postgres fall back to
// memory when unreachable so the service still starts.
func openKV(cfg *config.Config) service.KVStore {
	switch cfg.Storage.Driver {
	case config.DriverRedis:
		kv, err := repository.NewRedisKV(cfg)
		if err == nil {
			logger.Info("Connected to Redis", "addr", cfg.Redis.Addr)
			return kv
		}
		logger.Error("Failed to connect to Redis, falling back to memory", "error", err)
	case config.DriverPostgres:
		kv, err := repository.OpenPostgresKV(cfg)
		if err == nil {
			logger.Info("Connected to PostgreSQL")
			return kv
		}
		logger.Error("Failed to connect to DB, falling back to memory", "error", err)
	case config.DriverSQLite:
		kv, err := repository.NewSQLiteKV(cfg.Storage.SQLitePath)
		if err != nil {
			log.Fatalf("Failed to open sqlite store: %v", err)
		}
		logger.Info("Opened SQLite store", "path", cfg.Storage.SQLitePath)
		return kv
	}
	logger.Warn("Using in-memory storage; records are lost on restart")
	return service.NewMemoryKV()
}
