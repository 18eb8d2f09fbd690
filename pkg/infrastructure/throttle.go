package infrastructure

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const throttleKeyPrefix = "throttle:"

// RedisThrottle grants at most one acquisition of a key per window, across
// every process sharing the redis instance.
type RedisThrottle struct {
	client *redis.Client
}

func NewRedisThrottle(addr string) *RedisThrottle {
	return &RedisThrottle{client: redis.NewClient(&redis.Options{Addr: addr})}
}

// Acquire reports whether the caller won key for the next window.
func (t *RedisThrottle) Acquire(ctx context.Context, key string, window time.Duration) (bool, error) {
	return t.client.SetNX(ctx, throttleKeyPrefix+key, time.Now().UTC().Format(time.RFC3339), window).Result()
}

func (t *RedisThrottle) Ping(ctx context.Context) error {
	return t.client.Ping(ctx).Err()
}

func (t *RedisThrottle) Close() error {
	return t.client.Close()
}
