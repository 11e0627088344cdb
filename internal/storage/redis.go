package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// FreshnessCache marks analyzed targets with a TTL so a recent persisted
// record can be reused instead of re-crawling. Optional collaborator.
type FreshnessCache struct {
	client *redis.Client
}

func NewFreshnessCache(addr string) *FreshnessCache {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	return &FreshnessCache{client: rdb}
}

func (c *FreshnessCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// MarkAnalyzed sets a key with a TTL after a target's record is persisted.
func (c *FreshnessCache) MarkAnalyzed(ctx context.Context, target string, ttl time.Duration) error {
	key := fmt.Sprintf("analyzed:%s", target)
	return c.client.Set(ctx, key, "1", ttl).Err()
}

// IsRecentlyAnalyzed reports whether a target was analyzed within the TTL.
func (c *FreshnessCache) IsRecentlyAnalyzed(ctx context.Context, target string) (bool, error) {
	key := fmt.Sprintf("analyzed:%s", target)
	val, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return val == 1, nil
}
