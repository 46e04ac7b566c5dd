package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taskmanager/internal/cache"
	"taskmanager/internal/domain"
	"taskmanager/internal/logger"
	"taskmanager/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// TaskStore is the owner-scoped task persistence used by TaskService.
type TaskStore interface {
	List(ctx context.Context, owner uuid.UUID, f domain.TaskFilter) ([]*domain.Task, error)
	Get(ctx context.Context, owner, id uuid.UUID) (*domain.Task, error)
	Create(ctx context.Context, owner uuid.UUID, t *domain.Task) error
	Update(ctx context.Context, owner uuid.UUID, t *domain.Task) error
	Delete(ctx context.Context, owner, id uuid.UUID) error
}

// ListCache caches task listings per owner. Implemented by *cache.TaskCache.
// SetList must drop the listing if Invalidate ran for owner after the
// Version call that produced version.
type ListCache interface {
	GetList(ctx context.Context, owner uuid.UUID, f domain.TaskFilter) ([]*domain.Task, bool, error)
	Version(ctx context.Context, owner uuid.UUID) (int64, error)
	SetList(ctx context.Context, owner uuid.UUID, f domain.TaskFilter, version int64, list []*domain.Task) error
	Invalidate(ctx context.Context, owner uuid.UUID) error
}

// listLoadTimeout bounds a shared listing load, which no longer follows the
// context of the request that started it.
const listLoadTimeout = 10 * time.Second

type TaskService struct {
	store TaskStore
	cache ListCache
	sf    singleflight.Group
}

// NewTaskService creates a TaskService. If c is nil, caching is disabled.
func NewTaskService(store TaskStore, c ListCache) *TaskService {
	return &TaskService{store: store, cache: c}
}

// List returns the owner's tasks, newest first.
func (s *TaskService) List(ctx context.Context, owner uuid.UUID, f domain.TaskFilter) ([]*domain.Task, error) {
	if s.cache == nil {
		return s.store.List(ctx, owner, f)
	}

	ch := s.sf.DoChan(cache.ListKey(owner, f), func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), listLoadTimeout)
		defer cancel()
		return s.loadList(loadCtx, owner, f)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]*domain.Task), nil
	}
}

func (s *TaskService) loadList(ctx context.Context, owner uuid.UUID, f domain.TaskFilter) ([]*domain.Task, error) {
	log := logger.WithContext(ctx)

	list, ok, err := s.cache.GetList(ctx, owner, f)
	if err != nil {
		log.Warn("task cache read failed", "error", err)
	} else if ok {
		return list, nil
	}

	version, verErr := s.cache.Version(ctx, owner)
	if verErr != nil {
		log.Warn("task cache version read failed", "error", verErr)
	}
	list, err = s.store.List(ctx, owner, f)
	if err != nil {
		return nil, err
	}
	if verErr == nil {
		if err := s.cache.SetList(ctx, owner, f, version, list); err != nil {
			log.Warn("task cache write failed", "error", err)
		}
	}
	return list, nil
}

func (s *TaskService) Get(ctx context.Context, owner, id uuid.UUID) (*domain.Task, error) {
	return s.store.Get(ctx, owner, id)
}

func (s *TaskService) Create(ctx context.Context, owner uuid.UUID, in domain.TaskInput) (*domain.Task, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	t := in.NewTask(owner)
	if t.Title == "" {
		return nil, domain.Validation(`"title" is not allowed to be empty`)
	}

	if err := s.store.Create(ctx, owner, t); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	s.invalidate(ctx, owner)
	return t, nil
}

// Update applies the supplied fields of p to the owner's task.
func (s *TaskService) Update(ctx context.Context, owner, id uuid.UUID, p domain.TaskPatch) (*domain.Task, error) {
	if err := validatePatch(p); err != nil {
		return nil, err
	}

	t, err := s.store.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	p.Apply(t)
	if err := s.store.Update(ctx, owner, t); err != nil {
		return nil, err
	}
	s.invalidate(ctx, owner)
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, owner, id uuid.UUID) error {
	if err := s.store.Delete(ctx, owner, id); err != nil {
		return err
	}
	s.invalidate(ctx, owner)
	return nil
}

func validatePatch(p domain.TaskPatch) error {
	if p.Empty() {
		return domain.Validation(`"value" must have at least 1 key`)
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return domain.Validation(`"title" is not allowed to be empty`)
	}
	if p.Title != nil && strings.ContainsRune(*p.Title, 0) {
		return domain.Validation(`"title" must not contain null characters`)
	}
	if p.Description != nil && strings.ContainsRune(*p.Description, 0) {
		return domain.Validation(`"description" must not contain null characters`)
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return domain.Validation(`"priority" must be one of [Low, Medium, High]`)
	}
	return nil
}

func (s *TaskService) invalidate(ctx context.Context, owner uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, owner); err != nil {
		logger.WithContext(ctx).Warn("task cache invalidation failed", "owner", owner, "error", err)
	}
}
