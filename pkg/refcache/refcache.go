// Package refcache is a Redis backed read-through cache for slowly changing
// reference data.
package refcache

import (
	"context"
	"encoding/json"
	"errors"
	"finplan/pkg/logger"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Options configure a Cache.
type Options struct {
	// TTL is how long a loaded value is served from Redis.
	TTL time.Duration
	// Prefix namespaces the keys, e.g. "finplan:ref:".
	Prefix string
}

// Cache stores JSON encoded values in Redis. Redis failures never fail a
// lookup; the value is loaded from the source instead.
type Cache struct {
	rdb     redis.Cmdable
	options Options
}

// New returns a Cache on rdb.
func New(rdb redis.Cmdable, options Options) *Cache {
	return &Cache{rdb: rdb, options: options}
}

// NewClient connects to the Redis server at addr and checks it answers.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()

		return nil, fmt.Errorf("could not ping redis: %w", err)
	}

	return rdb, nil
}

// GetOrLoad returns the value cached under key, or calls load and caches its
// result. Errors from load are returned as is and nothing is cached.
func GetOrLoad[T any](ctx context.Context, c *Cache, key string, load func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return load(ctx)
	}
	key = c.options.Prefix + key

	b, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var v T
		if err := json.Unmarshal(b, &v); err == nil {
			return v, nil
		}
		logger.Warn(ctx, "dropping undecodable cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		logger.Warn(ctx, "could not read cache", zap.String("key", key), zap.Error(err))
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	b, err = json.Marshal(v)
	if err != nil {
		logger.Warn(ctx, "could not encode cache entry", zap.String("key", key), zap.Error(err))

		return v, nil
	}
	if err := c.rdb.Set(ctx, key, b, c.options.TTL).Err(); err != nil {
		logger.Warn(ctx, "could not write cache", zap.String("key", key), zap.Error(err))
	}

	return v, nil
}
