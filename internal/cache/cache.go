package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client is a Redis-backed response cache with per-entry TTL. Caching is a
// performance optimization, not a correctness requirement: every failure
// fails open. Get treats connectivity errors as a miss, Set and Delete log
// and report failure without surfacing an error to the request path.
type Client struct {
	rdb        *redis.Client
	defaultTTL time.Duration
	logger     *slog.Logger
}

// New creates a cache client over an established Redis connection.
func New(rdb *redis.Client, defaultTTL time.Duration) *Client {
	if defaultTTL <= 0 {
		defaultTTL = time.Hour
	}
	return &Client{
		rdb:        rdb,
		defaultTTL: defaultTTL,
		logger:     slog.Default(),
	}
}

// Get loads the value stored under key into dest. It returns false on a
// miss, on connectivity errors and on undecodable entries; it never fails
// the request.
func (c *Client) Get(ctx context.Context, key string, dest any) bool {
	value, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		c.logger.ErrorContext(ctx, "cache get failed", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal([]byte(value), dest); err != nil {
		c.logger.ErrorContext(ctx, "cache entry undecodable", "key", key, "error", err)
		return false
	}
	return true
}

// Set stores value under key with the given TTL (the default TTL when
// ttl <= 0), using SETEX semantics. Failures are logged and swallowed.
func (c *Client) Set(ctx context.Context, key string, value any, ttl time.Duration) bool {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	serialized, err := json.Marshal(value)
	if err != nil {
		c.logger.ErrorContext(ctx, "cache value unserializable", "key", key, "error", err)
		return false
	}
	if err := c.rdb.SetEX(ctx, key, serialized, ttl).Err(); err != nil {
		c.logger.ErrorContext(ctx, "cache set failed", "key", key, "error", err)
		return false
	}
	return true
}

// Delete removes a key. Used by collaborator flows (session logout); entry
// expiry is otherwise TTL-driven.
func (c *Client) Delete(ctx context.Context, key string) bool {
	deleted, err := c.rdb.Del(ctx, key).Result()
	if err != nil {
		c.logger.ErrorContext(ctx, "cache delete failed", "key", key, "error", err)
		return false
	}
	return deleted > 0
}

// Ping checks connectivity to Redis. Unlike the data-path operations it
// returns the error, so health checks can report cache state.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Exists reports whether a key is present.
func (c *Client) Exists(ctx context.Context, key string) bool {
	n, err := c.rdb.Exists(ctx, key).Result()
	if err != nil {
		c.logger.ErrorContext(ctx, "cache exists failed", "key", key, "error", err)
		return false
	}
	return n > 0
}
