package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisTTL bounds how long cached generations live in Redis. Entries
// are immutable, so the TTL only controls storage growth, not correctness.
const DefaultRedisTTL = 7 * 24 * time.Hour

// RedisStore backs the content-hash cache with Redis, sharing cached
// generations across processes.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a store on an existing client. An empty prefix
// defaults to "resumeguard".
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "resumeguard"
	}
	if ttl == 0 {
		ttl = DefaultRedisTTL
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

// ConnectRedis creates a client from an address and verifies connectivity.
func ConnectRedis(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return client, nil
}

func (s *RedisStore) key(key string) string {
	return s.prefix + ":cache:" + key
}

// Get returns the value for key if present.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}
	return value, true, nil
}

// Set stores value under key with the configured TTL. SetNX preserves the
// immutable-once-written invariant under concurrent writers.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.SetNX(ctx, s.key(key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}
