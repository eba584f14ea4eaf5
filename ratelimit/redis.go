package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type redisLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewRedis returns a fixed-window limiter backed by Redis. Works across
// multiple server processes sharing the same Redis.
func NewRedis(addr string, limit int64, window time.Duration) (Limiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:       addr,
		MaxRetries: 5,
	})

	status := client.Ping(context.Background())
	if status.Err() != nil {
		return nil, status.Err()
	}

	return &redisLimiter{
		client: client,
		limit:  limit,
		window: window,
	}, nil
}

func (rl *redisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	var count *redis.IntCmd

	_, err := rl.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		count = pipe.Incr(ctx, rl.key(key))
		pipe.Expire(ctx, rl.key(key), rl.window)
		return nil
	})
	if err != nil {
		return false, err
	}

	return count.Val() <= rl.limit, nil
}

func (rl *redisLimiter) key(key string) string {
	return fmt.Sprintf("ratelimit:%v", key)
}

func (rl *redisLimiter) Close() error {
	return rl.client.Close()
}
