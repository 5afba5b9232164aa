package storage

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "catchup:httpcache:"
	opTimeout = 2 * time.Second
)

// RedisStore keeps cached HTTP responses in Redis. Freshness is decided by the
// HTTP cache; ttl only bounds how long entries are retained. Redis errors are
// logged and treated as misses so that a broken cache never fails a request.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore returns a store whose entries expire after ttl (no expiry
// when ttl <= 0).
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func responseKey(key string) string {
	return keyPrefix + key
}

// Get returns the stored response bytes, reporting false on a miss.
func (s *RedisStore) Get(key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	b, err := s.rdb.Get(ctx, responseKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("storage: redis get failed", "key", key, "error", err)
		return nil, false
	}
	return b, true
}

func (s *RedisStore) Set(key string, value []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := s.rdb.Set(ctx, responseKey(key), value, s.ttl).Err(); err != nil {
		slog.Warn("storage: redis set failed", "key", key, "error", err)
	}
}

func (s *RedisStore) Delete(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := s.rdb.Del(ctx, responseKey(key)).Err(); err != nil {
		slog.Warn("storage: redis delete failed", "key", key, "error", err)
	}
}
