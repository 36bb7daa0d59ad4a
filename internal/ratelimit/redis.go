package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-pass-vault/internal/config"
)

const redisKeyPrefix = "go-pass-vault:rate_limit:"

// incrWithExpiry increments the window counter and starts the window on
// the first hit, atomically.
var incrWithExpiry = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// RedisLimiter is a fixed-window counter shared by every replica that
// points at the same Redis.
type RedisLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewRedisLimiter connects to cfg.RedisAddress and verifies the connection.
func NewRedisLimiter(ctx context.Context, cfg config.RateLimit) (*RedisLimiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return newRedisLimiter(client, cfg.RPS, cfg.Burst), nil
}

func newRedisLimiter(client *redis.Client, rps float64, burst int) *RedisLimiter {
	limit, win := window(rps, burst)
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: win,
	}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := incrWithExpiry.Run(ctx, r.client, []string{redisKeyPrefix + key}, r.window.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	return count <= r.limit, nil
}

func (r *RedisLimiter) Close() error {
	return r.client.Close()
}
