package integration

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"taskmanager/internal/db"
	"taskmanager/internal/domain"
	"taskmanager/internal/repository"
	"taskmanager/internal/seed"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := db.Migrate(ctx, pool, "up"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return pool
}

func createUser(t *testing.T, repo *repository.UserRepository, name string) *domain.User {
	t.Helper()
	u := &domain.User{
		Username:     name,
		Email:        name + "-" + uuid.NewString()[:8] + "@example.com",
		PasswordHash: "x",
	}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return u
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	pool := setupDB(t)
	repo := repository.NewUserRepository(pool)
	ctx := context.Background()

	u := createUser(t, repo, "dup")
	again := &domain.User{Username: "dup2", Email: u.Email, PasswordHash: "x"}
	if err := repo.Create(ctx, again); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	got, err := repo.GetByEmail(ctx, u.Email)
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got.ID != u.ID || got.PasswordHash != "x" {
		t.Fatalf("unexpected user %+v", got)
	}
	if _, err := repo.GetByID(ctx, uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTaskRepository_OwnerScoping(t *testing.T) {
	pool := setupDB(t)
	users := repository.NewUserRepository(pool)
	tasks := repository.NewTaskRepository(pool)
	ctx := context.Background()

	alice := createUser(t, users, "alice")
	bob := createUser(t, users, "bob")

	due := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	first := &domain.Task{Title: "first", Priority: domain.PriorityHigh, DueDate: &due}
	if err := tasks.Create(ctx, alice.ID, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	second := &domain.Task{Title: "second", Priority: domain.PriorityMedium, Completed: true}
	if err := tasks.Create(ctx, alice.ID, second); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := tasks.List(ctx, alice.ID, domain.TaskFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("expected newest first, got %d tasks", len(list))
	}

	done := true
	list, err = tasks.List(ctx, alice.ID, domain.TaskFilter{Completed: &done})
	if err != nil {
		t.Fatalf("list completed: %v", err)
	}
	if len(list) != 1 || list[0].ID != second.ID {
		t.Fatalf("completed filter returned %d tasks", len(list))
	}

	empty, err := tasks.List(ctx, bob.ID, domain.TaskFilter{})
	if err != nil {
		t.Fatalf("list bob: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("bob should see no tasks, got %v", empty)
	}

	if _, err := tasks.Get(ctx, bob.ID, first.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("bob get: expected not found, got %v", err)
	}
	first.Title = "hijacked"
	if err := tasks.Update(ctx, bob.ID, first); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("bob update: expected not found, got %v", err)
	}
	if err := tasks.Delete(ctx, bob.ID, first.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("bob delete: expected not found, got %v", err)
	}

	got, err := tasks.Get(ctx, alice.ID, first.ID)
	if err != nil {
		t.Fatalf("alice get: %v", err)
	}
	if got.Title != "first" || got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Fatalf("task changed by another user: %+v", got)
	}

	before := got.UpdatedAt
	got.Completed = true
	if err := tasks.Update(ctx, alice.ID, got); err != nil {
		t.Fatalf("alice update: %v", err)
	}
	if !got.UpdatedAt.After(before) {
		t.Fatal("updated_at should advance")
	}

	if err := tasks.Delete(ctx, alice.ID, first.ID); err != nil {
		t.Fatalf("alice delete: %v", err)
	}
	if _, err := tasks.Get(ctx, alice.ID, first.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("get after delete: %v", err)
	}
}

func TestSeeder_ImportAndDestroy(t *testing.T) {
	if os.Getenv("SEED_INTEGRATION") == "" {
		t.Skip("SEED_INTEGRATION not set; seeding truncates users and tasks")
	}
	pool := setupDB(t)
	ctx := context.Background()

	s := seed.NewSeeder(pool, bcrypt.MinCost, nil)
	sum, err := s.Import(ctx)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if sum.Users != len(seed.SampleUsers) || sum.Tasks != len(seed.SampleTasks) {
		t.Fatalf("unexpected summary %+v", sum)
	}

	users := repository.NewUserRepository(pool)
	john, err := users.GetByEmail(ctx, "john@example.com")
	if err != nil {
		t.Fatalf("john: %v", err)
	}
	list, err := repository.NewTaskRepository(pool).List(ctx, john.ID, domain.TaskFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("john has %d tasks, want 2", len(list))
	}

	if err := s.Destroy(ctx); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if _, err := users.GetByEmail(ctx, "john@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected users wiped, got %v", err)
	}
}
