package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hiennv/logbin/internal/config"
	"github.com/hiennv/logbin/internal/service"
	"github.com/redis/go-redis/v9"
)

// RedisKV stores each key as a plain redis string. SET replaces the whole
// value, which is the single atomic write the log store relies on.
type RedisKV struct {
	Client *redis.Client
}

func NewRedisKV(cfg *config.Config) (*RedisKV, error) {
	if cfg.Redis.Addr == "" {
		return nil, fmt.Errorf("redis address is empty")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisKV{Client: rdb}, nil
}

func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, service.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (r *RedisKV) Put(ctx context.Context, key string, value []byte) error {
	return r.Client.Set(ctx, key, value, 0).Err()
}

func (r *RedisKV) Close() error {
	return r.Client.Close()
}
