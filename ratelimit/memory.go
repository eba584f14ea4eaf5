package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/ReneKroon/ttlcache"
)

type memoryLimiter struct {
	mu    sync.Mutex
	cache *ttlcache.Cache
	limit int64
}

// NewMemory returns an in-process limiter for single-instance deployments
// and tests. Counters expire with the window.
func NewMemory(limit int64, window time.Duration) Limiter {
	cache := ttlcache.NewCache()
	cache.SetTTL(window)
	cache.SkipTtlExtensionOnHit(true)

	return &memoryLimiter{
		cache: cache,
		limit: limit,
	}
}

func (ml *memoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	var count int64
	if v, ok := ml.cache.Get(key); ok {
		count = v.(int64)
	}

	count++
	ml.cache.Set(key, count)

	return count <= ml.limit, nil
}

func (ml *memoryLimiter) Close() error {
	ml.cache.Purge()
	return nil
}
