package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"taskmanager/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "tasks:"
	versionSuffix = ":ver"

	// versionTTL only bounds how long an idle owner's counter lingers.
	versionTTL = 24 * time.Hour
)

// TaskCache caches per-owner task listings in Redis. Keys are
// tasks:<owner>:<all|true|false>. Each owner also has a write counter at
// tasks:<owner>:ver; a listing is only stored if the counter has not moved
// since the listing was read from the database.
type TaskCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewTaskCache(rdb *redis.Client, ttl time.Duration) *TaskCache {
	return &TaskCache{rdb: rdb, ttl: ttl}
}

// ListKey returns the cache key for an owner's listing under filter f.
func ListKey(owner uuid.UUID, f domain.TaskFilter) string {
	return keyPrefix + owner.String() + ":" + filterSuffix(f.Completed)
}

func versionKey(owner uuid.UUID) string {
	return keyPrefix + owner.String() + versionSuffix
}

func filterSuffix(completed *bool) string {
	switch {
	case completed == nil:
		return "all"
	case *completed:
		return "true"
	default:
		return "false"
	}
}

// GetList returns the cached listing, or ok=false on a miss.
func (c *TaskCache) GetList(ctx context.Context, owner uuid.UUID, f domain.TaskFilter) ([]*domain.Task, bool, error) {
	b, err := c.rdb.Get(ctx, ListKey(owner, f)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var list []*domain.Task
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, false, err
	}
	return list, true, nil
}

// Version returns owner's write counter. Read it before loading the listing
// that is later passed to SetList.
func (c *TaskCache) Version(ctx context.Context, owner uuid.UUID) (int64, error) {
	v, err := c.rdb.Get(ctx, versionKey(owner)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// SetList stores list unless owner's write counter differs from version.
// A listing skipped that way is not an error.
func (c *TaskCache) SetList(ctx context.Context, owner uuid.UUID, f domain.TaskFilter, version int64, list []*domain.Task) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	vkey := versionKey(owner)
	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, vkey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != version {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, ListKey(owner, f), b, c.ttl)
			return nil
		})
		return err
	}, vkey)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

// Invalidate bumps owner's write counter and drops every cached listing.
func (c *TaskCache) Invalidate(ctx context.Context, owner uuid.UUID) error {
	t, f := true, false
	vkey := versionKey(owner)
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, vkey)
		pipe.Expire(ctx, vkey, versionTTL)
		pipe.Del(ctx,
			ListKey(owner, domain.TaskFilter{}),
			ListKey(owner, domain.TaskFilter{Completed: &t}),
			ListKey(owner, domain.TaskFilter{Completed: &f}),
		)
		return nil
	})
	return err
}

// Flush drops all cached listings and bumps every write counter. Used after
// the sample data is reset.
func (c *TaskCache) Flush(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		var err error
		if strings.HasSuffix(key, versionSuffix) {
			err = c.rdb.Incr(ctx, key).Err()
		} else {
			err = c.rdb.Del(ctx, key).Err()
		}
		if err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *TaskCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}
