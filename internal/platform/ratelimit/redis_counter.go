// Package ratelimit shares httprate sliding-window counters across console
// replicas through Redis.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-chi/httprate"
	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "console:ratelimit"

// RedisCounter implements httprate.LimitCounter on Redis.
type RedisCounter struct {
	client       redis.UniversalClient
	prefix       string
	timeout      time.Duration
	windowLength time.Duration
}

var _ httprate.LimitCounter = (*RedisCounter)(nil)

// NewRedisCounter builds a counter storing keys under prefix.
func NewRedisCounter(client redis.UniversalClient, prefix string) *RedisCounter {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &RedisCounter{client: client, prefix: prefix, timeout: time.Second, windowLength: time.Minute}
}

// Config receives the limiter window from httprate.
func (c *RedisCounter) Config(requestLimit int, windowLength time.Duration) {
	c.windowLength = windowLength
}

// Increment adds one hit to the key's current window.
func (c *RedisCounter) Increment(key string, currentWindow time.Time) error {
	return c.IncrementBy(key, currentWindow, 1)
}

// IncrementBy adds amount hits to the key's current window.
func (c *RedisCounter) IncrementBy(key string, currentWindow time.Time, amount int) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	hkey := c.key(key, currentWindow)
	pipe := c.client.TxPipeline()
	pipe.IncrBy(ctx, hkey, int64(amount))
	pipe.Expire(ctx, hkey, c.windowLength*3)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("ratelimit: increment: %w", err)
	}
	return nil
}

// Get returns the hit counts of the current and previous windows.
func (c *RedisCounter) Get(key string, currentWindow, previousWindow time.Time) (int, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	values, err := c.client.MGet(ctx, c.key(key, currentWindow), c.key(key, previousWindow)).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("ratelimit: get: %w", err)
	}
	counts := [2]int{}
	for i, v := range values {
		if i >= len(counts) || v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return 0, 0, fmt.Errorf("ratelimit: unexpected value %T", v)
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, fmt.Errorf("ratelimit: parse count: %w", err)
		}
		counts[i] = n
	}
	return counts[0], counts[1], nil
}

func (c *RedisCounter) key(key string, window time.Time) string {
	return fmt.Sprintf("%s:%s:%d", c.prefix, key, window.Unix())
}
