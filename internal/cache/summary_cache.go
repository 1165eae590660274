package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"vibeform/internal/model"
)

// SummaryCache holds computed dashboard summaries per form
type SummaryCache interface {
	Get(ctx context.Context, formID string) (*model.FormSummary, error)
	Set(ctx context.Context, summary *model.FormSummary) error
	Invalidate(ctx context.Context, formID string) error
}

type summaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryCache creates a new summary cache
func NewSummaryCache(client *redis.Client, ttl time.Duration) SummaryCache {
	return &summaryCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *summaryCache) key(formID string) string {
	return fmt.Sprintf("form:%s:summary", formID)
}

func (c *summaryCache) Get(ctx context.Context, formID string) (*model.FormSummary, error) {
	data, err := c.client.Get(ctx, c.key(formID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var summary model.FormSummary
	if err := json.Unmarshal([]byte(data), &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *summaryCache) Set(ctx context.Context, summary *model.FormSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(summary.FormID), data, c.ttl).Err()
}

func (c *summaryCache) Invalidate(ctx context.Context, formID string) error {
	return c.client.Del(ctx, c.key(formID)).Err()
}
