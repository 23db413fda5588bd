package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"

	"github.com/ManuelReschke/VendaBot/internal/pkg/env"
)

// ErrMiss is returned by Get when the key is absent or no cache is configured.
var ErrMiss = errors.New("cache miss")

// Cache is a thin wrapper over a Redis client. A nil *Cache is valid and
// behaves as an always-empty cache, so callers never need to branch on
// whether Redis is configured.
type Cache struct {
	client *redis.Client
}

// New wraps an existing client.
func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// SetupCache connects to CACHE_HOST:CACHE_PORT. It returns nil when CACHE_HOST
// is unset or the server does not answer.
func SetupCache(ctx context.Context) *Cache {
	host := env.GetEnv("CACHE_HOST", "")
	if host == "" {
		fiberlog.Info("CACHE_HOST not set, running without cache")
		return nil
	}
	port := env.GetEnv("CACHE_PORT", "6379")

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: env.GetEnv("CACHE_PASSWORD", ""),
		DB:       0,
	})

	pong, err := client.Ping(ctx).Result()
	if err != nil {
		fiberlog.Warnf("Could not connect to cache at %s:%s: %v", host, port, err)
		_ = client.Close()
		return nil
	}
	fiberlog.Infof("Successfully connected to cache: %s", pong)
	return &Cache{client: client}
}

// Client returns the underlying Redis client, nil when disabled.
func (c *Cache) Client() *redis.Client {
	if c == nil {
		return nil
	}
	return c.client
}

// Set stores a value with the given expiration
func (c *Cache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	if c == nil {
		return nil
	}
	return c.client.Set(ctx, key, value, expiration).Err()
}

// Get retrieves a value by key
func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	if c == nil {
		return "", ErrMiss
	}
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	return val, err
}

// Delete removes keys
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if c == nil {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Close closes the connection pool
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
