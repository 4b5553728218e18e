package cache

import (
	"context"
	"encoding/json"
	"time"

	dom "propboard/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	keyTaskList  = "tasks:list:"
	keyPortfolio = "portfolios:grouped:"
)

// TaskCache caches per-user task lists and grouped portfolio views in
// Redis. A miss returns nil without error; writes invalidate both keys.
type TaskCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTaskCache returns a new TaskCache.
func NewTaskCache(rdb *redis.Client, ttl time.Duration) *TaskCache {
	return &TaskCache{rdb: rdb, ttl: ttl}
}

// GetTasks returns the cached task list for a user, or nil on miss.
func (c *TaskCache) GetTasks(ctx context.Context, userID string) ([]dom.Task, error) {
	b, err := c.rdb.Get(ctx, keyTaskList+userID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Task
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetTasks stores the task list for a user.
func (c *TaskCache) SetTasks(ctx context.Context, userID string, list []dom.Task) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyTaskList+userID, b, c.ttl).Err()
}

// GetGrouped returns the cached portfolio-with-tasks view, or nil on miss.
func (c *TaskCache) GetGrouped(ctx context.Context, userID string) ([]dom.PortfolioWithTasks, error) {
	b, err := c.rdb.Get(ctx, keyPortfolio+userID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.PortfolioWithTasks
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetGrouped stores the portfolio-with-tasks view for a user.
func (c *TaskCache) SetGrouped(ctx context.Context, userID string, list []dom.PortfolioWithTasks) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyPortfolio+userID, b, c.ttl).Err()
}

// InvalidateUser removes all cached views for a user (called on any
// task or portfolio write).
func (c *TaskCache) InvalidateUser(ctx context.Context, userID string) error {
	return c.rdb.Del(ctx, keyTaskList+userID, keyPortfolio+userID).Err()
}
