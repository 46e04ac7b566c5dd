// Package seed loads and wipes the sample users and tasks.
package seed

import (
	"context"
	"fmt"

	"taskmanager/internal/domain"
	"taskmanager/internal/logger"
	"taskmanager/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// TxStarter is implemented by *pgxpool.Pool.
type TxStarter interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Flusher drops cached task listings. Implemented by *cache.TaskCache.
type Flusher interface {
	Flush(ctx context.Context) error
}

// Summary reports what Import wrote.
type Summary struct {
	Users   int `json:"users"`
	Tasks   int `json:"tasks"`
	Skipped int `json:"skipped"`
}

// OwnedTask is a sample task resolved to its owner.
type OwnedTask struct {
	Owner uuid.UUID
	Task  *domain.Task
}

type Seeder struct {
	db    TxStarter
	cost  int
	cache Flusher
}

// NewSeeder creates a Seeder. cache may be nil.
func NewSeeder(db TxStarter, bcryptCost int, cache Flusher) *Seeder {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Seeder{db: db, cost: bcryptCost, cache: cache}
}

// Import replaces all users and tasks with the sample data in a single
// transaction.
func (s *Seeder) Import(ctx context.Context) (Summary, error) {
	var sum Summary

	users := make([]*domain.User, 0, len(SampleUsers))
	for _, su := range SampleUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), s.cost)
		if err != nil {
			return sum, fmt.Errorf("hash password for %s: %w", su.Username, err)
		}
		users = append(users, &domain.User{
			Username:     su.Username,
			Email:        su.Email,
			PasswordHash: string(hash),
		})
	}

	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		if err := truncate(ctx, tx); err != nil {
			return err
		}

		userRepo := repository.NewUserRepository(tx)
		owners := make(map[string]uuid.UUID, len(users))
		for _, u := range users {
			if err := userRepo.Create(ctx, u); err != nil {
				return fmt.Errorf("insert user %s: %w", u.Username, err)
			}
			owners[u.Username] = u.ID
		}
		sum.Users = len(users)

		assigned, skipped, err := AssignTasks(SampleTasks, owners)
		if err != nil {
			return err
		}
		for _, st := range skipped {
			logger.Warn("sample task skipped, unknown user", "user_ref", st.UserRef, "title", st.Title)
		}
		sum.Skipped = len(skipped)

		taskRepo := repository.NewTaskRepository(tx)
		for _, ot := range assigned {
			if err := taskRepo.Create(ctx, ot.Owner, ot.Task); err != nil {
				return fmt.Errorf("insert task %q: %w", ot.Task.Title, err)
			}
		}
		sum.Tasks = len(assigned)
		return nil
	})
	if err != nil {
		return Summary{}, fmt.Errorf("import sample data: %w", err)
	}

	s.flush(ctx)
	logger.Info("sample data imported", "users", sum.Users, "tasks", sum.Tasks, "skipped", sum.Skipped)
	return sum, nil
}

// Destroy deletes every user and task.
func (s *Seeder) Destroy(ctx context.Context) error {
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		return truncate(ctx, tx)
	})
	if err != nil {
		return fmt.Errorf("destroy data: %w", err)
	}
	s.flush(ctx)
	logger.Info("all users and tasks destroyed")
	return nil
}

// AssignTasks resolves each sample task's UserRef through owners. Tasks whose
// user is unknown are returned in skipped.
func AssignTasks(samples []SampleTask, owners map[string]uuid.UUID) (assigned []OwnedTask, skipped []SampleTask, err error) {
	for _, st := range samples {
		owner, ok := owners[st.UserRef]
		if !ok {
			skipped = append(skipped, st)
			continue
		}

		t := &domain.Task{
			UserID:      owner,
			Title:       st.Title,
			Description: st.Description,
			Completed:   st.Completed,
			Priority:    st.Priority,
		}
		if t.Priority == "" {
			t.Priority = domain.PriorityMedium
		}
		if st.DueDate != "" {
			due, err := domain.ParseDueDate(st.DueDate)
			if err != nil {
				return nil, nil, fmt.Errorf("sample task %q: %w", st.Title, err)
			}
			t.DueDate = &due
		}
		assigned = append(assigned, OwnedTask{Owner: owner, Task: t})
	}
	return assigned, skipped, nil
}

func truncate(ctx context.Context, tx pgx.Tx) error {
	if _, err := tx.Exec(ctx, `TRUNCATE tasks, users`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}
	return nil
}

func (s *Seeder) flush(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Flush(ctx); err != nil {
		logger.Warn("task cache flush failed", "error", err)
	}
}
