package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"winugly/internal/model"

	"github.com/redis/go-redis/v9"
)

// ReportCache holds the current report of each session. It is a single slot:
// every Set replaces the previous value.
type ReportCache interface {
	Set(ctx context.Context, sub *model.Submission) error
	Get(ctx context.Context, sessionID string) (*model.Submission, error)
	Delete(ctx context.Context, sessionID string) error
}

type reportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache creates a new report cache
func NewReportCache(client *redis.Client, ttl time.Duration) ReportCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &reportCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *reportCache) key(sessionID string) string {
	return fmt.Sprintf("report:%s", sessionID)
}

func (c *reportCache) Set(ctx context.Context, sub *model.Submission) error {
	data, err := json.Marshal(sub)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(sub.SessionID), data, c.ttl).Err()
}

func (c *reportCache) Get(ctx context.Context, sessionID string) (*model.Submission, error) {
	data, err := c.client.Get(ctx, c.key(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sub model.Submission
	if err := json.Unmarshal([]byte(data), &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (c *reportCache) Delete(ctx context.Context, sessionID string) error {
	return c.client.Del(ctx, c.key(sessionID)).Err()
}
