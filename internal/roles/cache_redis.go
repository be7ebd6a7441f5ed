package roles

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const roleCacheKeyPrefix = "roles:operator:"

// RedisCache is a Redis-backed implementation of Cache so gateway instances
// share resolved memberships. Expiry is delegated to Redis via the key TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache constructs a Redis-backed role cache with the given TTL.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Get returns the cached group list for the operator.
func (c *RedisCache) Get(ctx context.Context, oid string) ([]string, bool, error) {
	raw, err := c.client.Get(ctx, roleCacheKeyPrefix+oid).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var groups []string
	if err := json.Unmarshal([]byte(raw), &groups); err != nil {
		return nil, false, err
	}
	// Distinguish a cached empty list from a decode miss.
	if groups == nil {
		groups = []string{}
	}
	return groups, true, nil
}

// Set stores the group list with the cache TTL.
func (c *RedisCache) Set(ctx context.Context, oid string, groups []string) error {
	payload, err := json.Marshal(groups)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, roleCacheKeyPrefix+oid, payload, c.ttl).Err()
}
