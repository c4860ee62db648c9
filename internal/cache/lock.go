package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrLockHeld is returned when another submission for the same test section
// is in flight.
var ErrLockHeld = errors.New("section lock held")

// SectionLock serializes writes per (test, section) so two concurrent
// submissions cannot advance the level machine out of order.
type SectionLock interface {
	Acquire(ctx context.Context, testID, section string) (func(), error)
}

type sectionLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSectionLock creates a redis-backed advisory lock.
func NewSectionLock(client *redis.Client) SectionLock {
	return &sectionLock{
		client: client,
		ttl:    10 * time.Second,
	}
}

func (l *sectionLock) lockKey(testID, section string) string {
	return fmt.Sprintf("test:%s:s:%s:lock", testID, section)
}

// Acquire takes the lock and returns a release func. The TTL bounds how
// long a crashed holder can block the section.
func (l *sectionLock) Acquire(ctx context.Context, testID, section string) (func(), error) {
	key := l.lockKey(testID, section)
	ok, err := l.client.SetNX(ctx, key, "1", l.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLockHeld
	}
	release := func() {
		l.client.Del(context.Background(), key)
	}
	return release, nil
}
