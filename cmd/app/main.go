package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskmanager/internal/config"
	"taskmanager/internal/db"
	httpServer "taskmanager/internal/http"
	"taskmanager/internal/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	dbPool, err := db.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("database connect: %w", err)
	}
	defer dbPool.Close()

	if cfg.AutoMigrate {
		if err := db.Migrate(ctx, dbPool, "up"); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
	}

	rdb := db.ConnectRedis(ctx, cfg)
	if rdb != nil {
		defer rdb.Close()
	}

	svc := httpServer.NewServices(cfg, dbPool, rdb)
	r := httpServer.NewRouter(cfg, svc)

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      r,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server started", "port", cfg.AppPort, "env", cfg.AppEnv, "version", cfg.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
	return nil
}
