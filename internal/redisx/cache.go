package redisx

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss reports that a key is absent from the cache.
var ErrMiss = errors.New("cache miss")

// Cache is a thin wrapper around the redis client. The services treat it as
// best-effort: any error other than ErrMiss means a cache outage, and the
// caller falls through to the store instead of failing the request.
type Cache struct{ RDB *redis.Client }

func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	s, err := c.RDB.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	return s, err
}

func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.RDB.Set(ctx, key, value, ttl).Err()
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	return c.RDB.Del(ctx, keys...).Err()
}

func (c *Cache) FlushAll(ctx context.Context) error {
	return c.RDB.FlushAll(ctx).Err()
}
