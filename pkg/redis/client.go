// Package redis holds the process-wide go-redis client behind small
// package-level helpers. The HTTP layer uses it as the idempotency replay
// store: SetNX takes the processing lock, Set keeps the response for replay
// and Del releases the key after a failed attempt.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// pingTimeout bounds the connectivity probe during Init.
const pingTimeout = 5 * time.Second

var rdb *redis.Client

// Init dials the server described by url and verifies it answers before
// publishing the client. A non-empty password overrides one embedded in the
// URL.
func Init(url, password string) error {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return fmt.Errorf("parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}

	c := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}

	rdb = c
	return nil
}

// SetClient swaps in a prebuilt client. Tests pair it with miniredis.
func SetClient(c *redis.Client) {
	rdb = c
}

// GetClient exposes the underlying client for commands the helpers below do
// not cover.
func GetClient() *redis.Client {
	return rdb
}

// Set stores value under key for the given TTL.
func Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return rdb.Set(ctx, key, value, ttl).Err()
}

// Get returns the string stored under key. Absent keys surface the driver's
// redis.Nil error untouched so callers can tell a miss from an outage.
func Get(ctx context.Context, key string) (string, error) {
	return rdb.Get(ctx, key).Result()
}

// Del drops key.
func Del(ctx context.Context, key string) error {
	return rdb.Del(ctx, key).Err()
}

// SetNX stores value only when key is absent and reports whether this caller
// won the slot.
func SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	return rdb.SetNX(ctx, key, value, ttl).Result()
}
