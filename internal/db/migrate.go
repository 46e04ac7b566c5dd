package db

import (
	"context"
	"fmt"

	"taskmanager/internal/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrate runs a goose command ("up", "down", "status", "reset", "version")
// against the embedded migrations.
func Migrate(ctx context.Context, pool *pgxpool.Pool, command string) error {
	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.RunContext(ctx, command, sqlDB, "."); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
