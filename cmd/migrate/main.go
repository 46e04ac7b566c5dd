package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"taskmanager/internal/config"
	"taskmanager/internal/db"
	"taskmanager/internal/logger"
)

func main() {
	command := flag.String("cmd", "up", "goose command: up, down, status, reset, version")
	flag.Parse()

	if err := run(*command); err != nil {
		logger.Error("migrate failed", "cmd", *command, "error", err)
		os.Exit(1)
	}
	logger.Info("migrate finished", "cmd", *command)
}

func run(command string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("database connect: %w", err)
	}
	defer pool.Close()

	return db.Migrate(ctx, pool, command)
}
