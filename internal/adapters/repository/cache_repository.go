package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/studysync/core/internal/infrastructure/config"
	"github.com/studysync/core/internal/ports"
)

// CacheRepositoryImpl implements the CacheRepository interface on Redis.
// It backs the feed-body cache; callers treat every error as a miss.
type CacheRepositoryImpl struct {
	client *redis.Client
}

// NewCacheRepository creates a new Redis-backed cache repository
func NewCacheRepository(cfg config.RedisConfig) ports.CacheRepository {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &CacheRepositoryImpl{client: client}
}

func (r *CacheRepositoryImpl) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	if err := r.client.Set(ctx, key, value, expiration).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (r *CacheRepositoryImpl) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("cache miss")
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}
	return value, nil
}

func (r *CacheRepositoryImpl) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}
