package repositories

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrCacheMiss is returned by Get when the key does not exist.
var ErrCacheMiss = redis.Nil

type CacheRepositoryInterface interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	DelByPattern(ctx context.Context, pattern string) error
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) (bool, error)
}

// NoopCacheRepository is used when Redis is disabled: every read misses.
type NoopCacheRepository struct{}

func NewNoopCacheRepository() CacheRepositoryInterface {
	return NoopCacheRepository{}
}

func (NoopCacheRepository) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}

func (NoopCacheRepository) Get(context.Context, string) (string, error) {
	return "", ErrCacheMiss
}

func (NoopCacheRepository) Del(context.Context, ...string) error {
	return nil
}

func (NoopCacheRepository) DelByPattern(context.Context, string) error {
	return nil
}

func (NoopCacheRepository) Incr(context.Context, string) (int64, error) {
	return 0, nil
}

func (NoopCacheRepository) Expire(context.Context, string, time.Duration) (bool, error) {
	return false, nil
}
