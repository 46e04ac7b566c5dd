package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities lists the accepted values in display order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	UserID      uuid.UUID  `db:"user_id" json:"user"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	Completed   bool       `db:"completed" json:"completed"`
	DueDate     *time.Time `db:"due_date" json:"dueDate"`
	Priority    Priority   `db:"priority" json:"priority"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}

// TaskFilter narrows a task listing. A nil Completed means no filter.
type TaskFilter struct {
	Completed *bool
}

// TaskInput is the payload for creating a task.
type TaskInput struct {
	Title       string   `json:"title" validate:"required,nonul"`
	Description string   `json:"description" validate:"nonul"`
	DueDate     *DueDate `json:"dueDate"`
	Priority    Priority `json:"priority" validate:"omitempty,oneof=Low Medium High"`
}

// NewTask builds a task owned by owner with defaults applied.
func (in TaskInput) NewTask(owner uuid.UUID) *Task {
	t := &Task{
		UserID:      owner,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Priority:    in.Priority,
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if in.DueDate != nil {
		d := in.DueDate.Time
		t.DueDate = &d
	}
	return t
}

// TaskPatch is a partial update. Nil fields are left untouched; DueDateSet
// distinguishes "clear the due date" (DueDate nil) from "not supplied".
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	DueDate     *time.Time
	DueDateSet  bool
	Priority    *Priority
}

func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil &&
		!p.DueDateSet && p.Priority == nil
}

func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.DueDateSet {
		t.DueDate = p.DueDate
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
}
