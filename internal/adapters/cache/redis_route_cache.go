package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"trip-planner-service/internal/ports"
)

// Default lifetime of a cached route. Road networks change slowly;
// a week keeps repeat plans cheap without serving stale routes forever.
const DefaultRouteTTL = 7 * 24 * time.Hour

// RedisRouteCache is a Redis-backed cache of resolved routes keyed by
// waypoint sequence, with per-entry TTL.
type RedisRouteCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRouteCache(addr string, ttl time.Duration) (*RedisRouteCache, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("redis route cache: addr must not be empty")
	}
	if ttl <= 0 {
		ttl = DefaultRouteTTL
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis route cache: verify connection to %q: %w", addr, err)
	}

	return &RedisRouteCache{client: client, ttl: ttl}, nil
}

func (c *RedisRouteCache) Get(ctx context.Context, key string) (*ports.RouteResult, bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false, errors.New("get route cache: key must not be empty")
	}

	payload, err := c.client.Get(ctx, c.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get route cache: redis get %q: %w", key, err)
	}

	var result ports.RouteResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, false, fmt.Errorf("get route cache: decode payload for %q: %w", key, err)
	}

	return &result, true, nil
}

func (c *RedisRouteCache) Put(ctx context.Context, key string, result *ports.RouteResult) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("insert route cache: key must not be empty")
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("insert route cache: encode payload for %q: %w", key, err)
	}

	if err := c.client.Set(ctx, c.redisKey(key), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}

func (c *RedisRouteCache) Close() error { return c.client.Close() }

func (c *RedisRouteCache) redisKey(key string) string { return "route:" + key }
