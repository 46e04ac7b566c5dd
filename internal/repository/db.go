package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	pgUniqueViolation          = "23505"
	pgCharacterNotInRepertoire = "22021"
)

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation.
func IsUniqueViolation(err error) bool {
	var pge *pgconn.PgError
	if errors.As(err, &pge) {
		return pge.Code == pgUniqueViolation
	}
	return false
}

// IsInvalidText reports whether Postgres refused a string value, as it does
// for text containing NUL.
func IsInvalidText(err error) bool {
	var pge *pgconn.PgError
	if errors.As(err, &pge) {
		return pge.Code == pgCharacterNotInRepertoire
	}
	return false
}
