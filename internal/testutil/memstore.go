// Package testutil provides in-memory stores with the same ownership and
// uniqueness rules as the Postgres repositories.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"taskmanager/internal/domain"

	"github.com/google/uuid"
)

var errTaskNotFound = domain.NotFound("Task not found or not owned by user")

// Clock hands out strictly increasing timestamps.
type Clock struct {
	mu  sync.Mutex
	cur time.Time
}

func NewClock() *Clock {
	return &Clock{cur: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(time.Millisecond)
	return c.cur
}

type UserStore struct {
	mu    sync.Mutex
	clock *Clock
	byID  map[uuid.UUID]domain.User
}

func NewUserStore() *UserStore {
	return &UserStore{clock: NewClock(), byID: make(map[uuid.UUID]domain.User)}
}

func (s *UserStore) Create(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.byID {
		if existing.Email == u.Email {
			return domain.Conflict("User already exists")
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := s.clock.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	s.byID[u.ID] = *u
	return nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, domain.NotFound("user not found")
}

func (s *UserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, domain.NotFound("user not found")
	}
	return &u, nil
}

// Remove deletes a user, as if removed out of band.
func (s *UserStore) Remove(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, id)
}

// Count returns the number of stored users.
func (s *UserStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

type TaskStore struct {
	mu    sync.Mutex
	clock *Clock
	byID  map[uuid.UUID]domain.Task

	// Calls counts List invocations.
	Calls int
}

func NewTaskStore() *TaskStore {
	return &TaskStore{clock: NewClock(), byID: make(map[uuid.UUID]domain.Task)}
}

func (s *TaskStore) List(_ context.Context, owner uuid.UUID, f domain.TaskFilter) ([]*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	res := make([]*domain.Task, 0)
	for _, t := range s.byID {
		if t.UserID != owner {
			continue
		}
		if f.Completed != nil && t.Completed != *f.Completed {
			continue
		}
		t := t
		res = append(res, &t)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res, nil
}

func (s *TaskStore) Get(_ context.Context, owner, id uuid.UUID) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.byID[id]
	if !ok || t.UserID != owner {
		return nil, errTaskNotFound
	}
	return &t, nil
}

func (s *TaskStore) Create(_ context.Context, owner uuid.UUID, t *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.UserID = owner
	now := s.clock.Now()
	t.CreatedAt, t.UpdatedAt = now, now
	s.byID[t.ID] = *t
	return nil
}

func (s *TaskStore) Update(_ context.Context, owner uuid.UUID, t *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.byID[t.ID]
	if !ok || existing.UserID != owner {
		return errTaskNotFound
	}
	t.UserID = existing.UserID
	t.CreatedAt = existing.CreatedAt
	t.UpdatedAt = s.clock.Now()
	s.byID[t.ID] = *t
	return nil
}

func (s *TaskStore) Delete(_ context.Context, owner, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.byID[id]
	if !ok || t.UserID != owner {
		return errTaskNotFound
	}
	delete(s.byID, id)
	return nil
}

// Len returns the number of stored tasks across all owners.
func (s *TaskStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}
