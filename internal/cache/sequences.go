package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SequenceCache stores the latest submission number per session so several
// API replicas agree on which eligibility result is current.
type SequenceCache interface {
	Next(ctx context.Context, sessionID string) (int64, error)
	Latest(ctx context.Context, sessionID string) (int64, error)
	Close() error
}

type redisSequenceCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisSequenceCache builds a cache with the given addr/password/db.
func NewRedisSequenceCache(addr, password string, db int, ttl time.Duration, prefix string) (SequenceCache, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis addr is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return newRedisSequenceCache(client, ttl, prefix), nil
}

func newRedisSequenceCache(client *redis.Client, ttl time.Duration, prefix string) *redisSequenceCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if prefix == "" {
		prefix = "elig_seq"
	}
	return &redisSequenceCache{client: client, ttl: ttl, prefix: prefix}
}

func (c *redisSequenceCache) key(sessionID string) string {
	return fmt.Sprintf("%s:%s", c.prefix, sessionID)
}

// Next increments the session counter and refreshes its TTL.
func (c *redisSequenceCache) Next(ctx context.Context, sessionID string) (int64, error) {
	if c == nil || c.client == nil {
		return 0, fmt.Errorf("redis sequence cache not initialized")
	}
	key := c.key(sessionID)
	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (c *redisSequenceCache) Latest(ctx context.Context, sessionID string) (int64, error) {
	if c == nil || c.client == nil {
		return 0, fmt.Errorf("redis sequence cache not initialized")
	}
	val, err := c.client.Get(ctx, c.key(sessionID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return val, nil
}

func (c *redisSequenceCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
