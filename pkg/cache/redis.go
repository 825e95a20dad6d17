package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisManager backs the cache with a shared Redis instance so several
// process replicas see the same entries. Size bounds are delegated to
// the server's maxmemory policy; TTLs still guarantee eventual expiry.
type RedisManager struct {
	rdb        *redis.Client
	namespaces map[string]Namespace
}

func NewRedisManager(rdb *redis.Client, namespaces []Namespace) *RedisManager {
	m := &RedisManager{rdb: rdb, namespaces: make(map[string]Namespace, len(namespaces))}
	for _, ns := range namespaces {
		m.namespaces[ns.Name] = ns
	}
	return m
}

func (m *RedisManager) redisKey(namespace, key string) string {
	return fmt.Sprintf("cache:%s:%s", namespace, key)
}

func (m *RedisManager) Get(ctx context.Context, namespace, key string, dest interface{}) (bool, error) {
	if _, ok := m.namespaces[namespace]; !ok {
		return false, fmt.Errorf("unknown cache namespace: %s", namespace)
	}
	raw, err := m.rdb.Get(ctx, m.redisKey(namespace, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode cached value %s/%s: %w", namespace, key, err)
	}
	return true, nil
}

func (m *RedisManager) Set(ctx context.Context, namespace, key string, value interface{}) error {
	return m.SetWithTTL(ctx, namespace, key, value, 0)
}

func (m *RedisManager) SetWithTTL(ctx context.Context, namespace, key string, value interface{}, ttl time.Duration) error {
	ns, ok := m.namespaces[namespace]
	if !ok {
		return fmt.Errorf("unknown cache namespace: %s", namespace)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value %s/%s: %w", namespace, key, err)
	}
	if ttl <= 0 {
		ttl = ns.TTL
	}
	return m.rdb.Set(ctx, m.redisKey(namespace, key), raw, ttl).Err()
}

func (m *RedisManager) Delete(ctx context.Context, namespace, key string) error {
	if _, ok := m.namespaces[namespace]; !ok {
		return fmt.Errorf("unknown cache namespace: %s", namespace)
	}
	return m.rdb.Del(ctx, m.redisKey(namespace, key)).Err()
}
