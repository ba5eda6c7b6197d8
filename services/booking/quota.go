package booking

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// UsageTracker counts daily message and character usage. Day-keyed
// counters survive restarts, unlike an in-process tally.
type UsageTracker interface {
	// CountMessage increments the day's message counter and returns the
	// new total.
	CountMessage(ctx context.Context, day string) (int64, error)
	// CountChars adds n to the day's character counter and returns the
	// new total.
	CountChars(ctx context.Context, day string, n int) (int64, error)
}

// RedisUsageTracker implements UsageTracker on Redis INCR counters.
type RedisUsageTracker struct {
	client *redis.Client
}

// NewRedisUsageTracker constructs a RedisUsageTracker.
func NewRedisUsageTracker(client *redis.Client) *RedisUsageTracker {
	return &RedisUsageTracker{client: client}
}

// Counters expire two days after first use; the day key itself rotates
// at midnight.
const usageExpiry = 48 * time.Hour

func (t *RedisUsageTracker) bump(ctx context.Context, key string, n int64) (int64, error) {
	total, err := t.client.IncrBy(ctx, key, n).Result()
	if err != nil {
		return 0, err
	}
	if total == n {
		t.client.Expire(ctx, key, usageExpiry)
	}
	return total, nil
}

func (t *RedisUsageTracker) CountMessage(ctx context.Context, day string) (int64, error) {
	return t.bump(ctx, "usage:msg:"+day, 1)
}

func (t *RedisUsageTracker) CountChars(ctx context.Context, day string, n int) (int64, error) {
	return t.bump(ctx, "usage:chars:"+day, int64(n))
}
