// Package cache keeps role permission lists in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "salon:role_permissions:"

// Connect parses a redis:// URL and checks the server is reachable.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

type PermissionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPermissionCache(client *redis.Client, ttl time.Duration) *PermissionCache {
	return &PermissionCache{client: client, ttl: ttl}
}

func key(roleID uint) string {
	return fmt.Sprintf("%s%d", keyPrefix, roleID)
}

func (c *PermissionCache) Get(ctx context.Context, roleID uint) ([]string, bool, error) {
	raw, err := c.client.Get(ctx, key(roleID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var perms []string
	if err := json.Unmarshal(raw, &perms); err != nil {
		return nil, false, fmt.Errorf("decode cached permissions: %w", err)
	}
	return perms, true, nil
}

func (c *PermissionCache) Set(ctx context.Context, roleID uint, permissions []string) error {
	raw, err := json.Marshal(permissions)
	if err != nil {
		return fmt.Errorf("encode permissions: %w", err)
	}
	if err := c.client.Set(ctx, key(roleID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *PermissionCache) Invalidate(ctx context.Context, roleID uint) error {
	if err := c.client.Del(ctx, key(roleID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
