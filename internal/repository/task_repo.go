package repository

import (
	"context"
	"errors"

	"taskmanager/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TaskRepository persists tasks. Every method takes the owner id and
// filters on it; there is no way to reach another user's rows.
type TaskRepository struct {
	db DBTX
}

func NewTaskRepository(db DBTX) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, user_id, title, description, completed, due_date, priority, created_at, updated_at`

const msgInvalidText = "Text fields must not contain null characters"

var errTaskNotFound = domain.NotFound("Task not found or not owned by user")

func (r *TaskRepository) List(ctx context.Context, owner uuid.UUID, f domain.TaskFilter) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1`
	args := []any{owner}
	if f.Completed != nil {
		query += ` AND completed = $2`
		args = append(args, *f.Completed)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]*domain.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

func (r *TaskRepository) Get(ctx context.Context, owner, id uuid.UUID) (*domain.Task, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND user_id = $2`,
		id, owner,
	)
	t, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errTaskNotFound
	}
	return t, err
}

// Create inserts t as owned by owner and fills ID and timestamps.
func (r *TaskRepository) Create(ctx context.Context, owner uuid.UUID, t *domain.Task) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.UserID = owner
	err := r.db.QueryRow(ctx,
		`INSERT INTO tasks (id, user_id, title, description, completed, due_date, priority)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at, updated_at`,
		t.ID, owner, t.Title, t.Description, t.Completed, t.DueDate, string(t.Priority),
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if IsInvalidText(err) {
		return domain.WrapError(domain.CodeValidation, msgInvalidText, err)
	}
	return err
}

// Update overwrites the mutable fields of the owner's task t.ID. Concurrent
// writers are last-write-wins.
func (r *TaskRepository) Update(ctx context.Context, owner uuid.UUID, t *domain.Task) error {
	row := r.db.QueryRow(ctx,
		`UPDATE tasks
		 SET title = $3, description = $4, completed = $5, due_date = $6, priority = $7,
		     updated_at = clock_timestamp()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+taskColumns,
		t.ID, owner, t.Title, t.Description, t.Completed, t.DueDate, string(t.Priority),
	)
	updated, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errTaskNotFound
		}
		if IsInvalidText(err) {
			return domain.WrapError(domain.CodeValidation, msgInvalidText, err)
		}
		return err
	}
	*t = *updated
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, owner, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, owner)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errTaskNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var (
		t        domain.Task
		priority string
	)
	if err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&t.Description,
		&t.Completed,
		&t.DueDate,
		&priority,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	t.Priority = domain.Priority(priority)
	return &t, nil
}
