package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionCache holds the per-presentation state that must survive between a
// "next question" call and the matching submission: the shuffled option
// order. Orders are short-lived and never written to the durable store.
type SessionCache interface {
	SetOptionOrder(ctx context.Context, testID, questionID string, order []int) error
	GetOptionOrder(ctx context.Context, testID, questionID string) ([]int, error)
	ClearOptionOrder(ctx context.Context, testID, questionID string) error
}

type sessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache creates a session cache.
func NewSessionCache(client *redis.Client) SessionCache {
	return &sessionCache{
		client: client,
		ttl:    2 * time.Hour,
	}
}

func (c *sessionCache) orderKey(testID, questionID string) string {
	return fmt.Sprintf("test:%s:q:%s:order", testID, questionID)
}

func (c *sessionCache) SetOptionOrder(ctx context.Context, testID, questionID string, order []int) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.orderKey(testID, questionID), data, c.ttl).Err()
}

// GetOptionOrder returns the cached order, or nil when none is cached.
func (c *sessionCache) GetOptionOrder(ctx context.Context, testID, questionID string) ([]int, error) {
	data, err := c.client.Get(ctx, c.orderKey(testID, questionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var order []int
	if err := json.Unmarshal([]byte(data), &order); err != nil {
		return nil, err
	}
	return order, nil
}

func (c *sessionCache) ClearOptionOrder(ctx context.Context, testID, questionID string) error {
	return c.client.Del(ctx, c.orderKey(testID, questionID)).Err()
}
