package repository

import (
	"context"
	"errors"

	"taskmanager/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, email, password_hash, created_at, updated_at`

// Create inserts u and fills ID and timestamps. A duplicate email yields
// domain.ErrConflict.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (id, username, email, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at`,
		u.ID, u.Username, u.Email, u.PasswordHash,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return domain.WrapError(domain.CodeConflict, "User already exists", err)
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	)
	return scanUser(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		id,
	)
	return scanUser(row)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.WrapError(domain.CodeNotFound, "user not found", err)
		}
		return nil, err
	}
	return &u, nil
}
