package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"taskmanager/internal/cache"
	"taskmanager/internal/config"
	"taskmanager/internal/db"
	"taskmanager/internal/logger"
	"taskmanager/internal/seed"
)

func main() {
	destroy := flag.Bool("d", false, "destroy all users and tasks instead of importing sample data")
	flag.Parse()

	if err := run(*destroy); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(destroy bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	if err := cfg.SeedingAllowed(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("database connect: %w", err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool, "up"); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	var flusher seed.Flusher
	if rdb := db.ConnectRedis(ctx, cfg); rdb != nil {
		defer rdb.Close()
		flusher = cache.NewTaskCache(rdb, cfg.CacheTTL)
	}

	s := seed.NewSeeder(pool, cfg.BcryptCost, flusher)
	if destroy {
		if err := s.Destroy(ctx); err != nil {
			return fmt.Errorf("destroy: %w", err)
		}
		logger.Info("data destroyed")
		return nil
	}

	sum, err := s.Import(ctx)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	for _, u := range seed.SampleUsers {
		logger.Info("sample login", "email", u.Email, "password", u.Password)
	}
	logger.Info("done", "users", sum.Users, "tasks", sum.Tasks)
	return nil
}
