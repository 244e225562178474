// Package cache keeps small JSON values in Redis with a TTL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// JSONCache stores a single value type under prefixed keys.
type JSONCache[T any] struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewJSONCache returns a cache writing keys as prefix+key with the given TTL.
func NewJSONCache[T any](client *redis.Client, prefix string, ttl time.Duration) *JSONCache[T] {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &JSONCache[T]{client: client, prefix: prefix, ttl: ttl}
}

func (c *JSONCache[T]) key(k string) string { return c.prefix + k }

// Get returns nil, nil on a miss.
func (c *JSONCache[T]) Get(ctx context.Context, k string) (*T, error) {
	b, err := c.client.Get(ctx, c.key(k)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		// a value we cannot read is treated as a miss and dropped
		_ = c.client.Del(ctx, c.key(k)).Err()
		return nil, nil
	}
	return &v, nil
}

func (c *JSONCache[T]) Set(ctx context.Context, k string, v T) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(k), b, c.ttl).Err()
}

func (c *JSONCache[T]) Invalidate(ctx context.Context, k string) error {
	return c.client.Del(ctx, c.key(k)).Err()
}
