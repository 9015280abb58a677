// Package ratelimit provides Redis-backed send throttling.
//
// Two primitives are offered: a cooldown that enforces a minimum gap between
// consecutive sends to the same key, and a fixed window counter that caps the
// total number of sends per key inside a time window.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter throttles repeated actions per key.
type Limiter interface {
	// ReserveCooldown claims the cooldown slot for key. When the slot is
	// already held, ok is false and retryAfter reports the remaining wait.
	ReserveCooldown(ctx context.Context, key string, ttl time.Duration) (retryAfter time.Duration, ok bool, err error)

	// AllowWindow counts one action against key's fixed window and reports
	// whether the count is still within limit.
	AllowWindow(ctx context.Context, key string, window time.Duration, limit int64) (bool, error)

	// ClearCooldown releases the cooldown slot for key.
	ClearCooldown(ctx context.Context, key string) error
}

// RedisLimiter implements Limiter on top of Redis.
type RedisLimiter struct {
	client redis.Cmdable
	prefix string
}

// NewRedisLimiter constructs a limiter; prefix namespaces all keys.
func NewRedisLimiter(client redis.Cmdable, prefix string) *RedisLimiter {
	return &RedisLimiter{client: client, prefix: prefix}
}

// ReserveCooldown claims the cooldown slot using SET NX with a TTL.
func (l *RedisLimiter) ReserveCooldown(ctx context.Context, key string, ttl time.Duration) (time.Duration, bool, error) {
	k := l.key("cooldown", key)

	set, err := l.client.SetNX(ctx, k, "1", ttl).Result()
	if err != nil {
		return 0, false, fmt.Errorf("ratelimit: reserve cooldown: %w", err)
	}
	if set {
		return 0, true, nil
	}

	remaining, err := l.client.TTL(ctx, k).Result()
	if err != nil {
		return 0, false, fmt.Errorf("ratelimit: cooldown ttl: %w", err)
	}
	if remaining < 0 {
		remaining = 0
	}
	return remaining, false, nil
}

// AllowWindow increments the window counter, setting the expiry on first use.
func (l *RedisLimiter) AllowWindow(ctx context.Context, key string, window time.Duration, limit int64) (bool, error) {
	k := l.key("window", key)

	count, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("ratelimit: incr window: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, k, window).Err(); err != nil {
			return false, fmt.Errorf("ratelimit: expire window: %w", err)
		}
	}

	return count <= limit, nil
}

// ClearCooldown deletes the cooldown key.
func (l *RedisLimiter) ClearCooldown(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.key("cooldown", key)).Err(); err != nil {
		return fmt.Errorf("ratelimit: clear cooldown: %w", err)
	}
	return nil
}

func (l *RedisLimiter) key(kind, key string) string {
	return fmt.Sprintf("%s:%s:%s", l.prefix, kind, key)
}
