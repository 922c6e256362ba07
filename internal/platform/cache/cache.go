package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/selfinvest-backend/internal/platform/logger"
)

// Cache is a thin JSON read-through layer over redis. All derived analytics
// records (summaries, insights, patterns) are cached here and invalidated on
// recompute. A nil *Cache is valid and means caching is disabled.
type Cache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

// ErrMiss is returned by Get when the key is absent.
var ErrMiss = fmt.Errorf("cache miss")

// New connects to redis from REDIS_ADDR. Returns (nil, nil) when REDIS_ADDR
// is unset so callers can run without a cache.
func New(log *logger.Logger) (*Cache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		log.Info("REDIS_ADDR not set, cache disabled")
		return nil, nil
	}
	prefix := strings.TrimSpace(os.Getenv("REDIS_KEY_PREFIX"))
	if prefix == "" {
		prefix = "selfinvest"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Cache{
		log:    log.With("service", "Cache"),
		rdb:    rdb,
		prefix: prefix,
		ttl:    15 * time.Minute,
	}, nil
}

func (c *Cache) key(parts ...string) string {
	return c.prefix + ":" + strings.Join(parts, ":")
}

// Get unmarshals the cached value at key into dest. Returns ErrMiss when the
// key is absent or the cache is disabled.
func (c *Cache) Get(ctx context.Context, dest interface{}, parts ...string) error {
	if c == nil || c.rdb == nil {
		return ErrMiss
	}
	raw, err := c.rdb.Get(ctx, c.key(parts...)).Bytes()
	if err == goredis.Nil {
		return ErrMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

// Set stores value as JSON under key with the default TTL. Failures are
// logged, not returned, so a flaky cache never fails a request.
func (c *Cache) Set(ctx context.Context, value interface{}, parts ...string) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("cache marshal failed", "key", c.key(parts...), "error", err)
		return
	}
	if err := c.rdb.Set(ctx, c.key(parts...), raw, c.ttl).Err(); err != nil {
		c.log.Warn("cache set failed", "key", c.key(parts...), "error", err)
	}
}

// Invalidate drops every key under the given namespace parts.
func (c *Cache) Invalidate(ctx context.Context, parts ...string) {
	if c == nil || c.rdb == nil {
		return
	}
	pattern := c.key(parts...) + "*"
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Warn("cache invalidate failed", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("cache scan failed", "pattern", pattern, "error", err)
	}
}

func (c *Cache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
