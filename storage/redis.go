package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Snapshots in Redis expire on their own; the cookie session lives 30 days,
// so the cart outlives it slightly rather than vanishing first.
const redisSnapshotTTL = 31 * 24 * time.Hour

// RedisSnapshots is the Redis-backed snapshot store, for deployments that
// keep cart state out of the SQLite file.
type RedisSnapshots struct {
	rdb *redis.Client
}

func NewRedisSnapshots(addr string) (*RedisSnapshots, error) {
	if addr == "" {
		return nil, errors.New("redis address is required")
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return &RedisSnapshots{rdb: rdb}, nil
}

func (s *RedisSnapshots) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot %q: %w", key, err)
	}
	return val, nil
}

func (s *RedisSnapshots) Put(ctx context.Context, key string, payload []byte) error {
	if err := s.rdb.Set(ctx, key, payload, redisSnapshotTTL).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot %q: %w", key, err)
	}
	return nil
}

func (s *RedisSnapshots) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot %q: %w", key, err)
	}
	return nil
}

func (s *RedisSnapshots) Close() error {
	return s.rdb.Close()
}
