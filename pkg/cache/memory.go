package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const purgeInterval = 10 * time.Minute

// memoryNamespace is one bounded go-cache instance. Eviction is FIFO:
// when the bound is reached the oldest key still present is dropped.
// FIFO keeps eviction O(1) and deterministic; the TTL already handles
// recency for this workload.
type memoryNamespace struct {
	cache      *gocache.Cache
	ttl        time.Duration
	maxEntries int

	mu      sync.Mutex
	order   []string
	present map[string]struct{}
}

// MemoryManager is the in-process cache backend, one go-cache instance
// per namespace. Safe for concurrent use.
type MemoryManager struct {
	namespaces map[string]*memoryNamespace
}

func NewMemoryManager(namespaces []Namespace) *MemoryManager {
	m := &MemoryManager{namespaces: make(map[string]*memoryNamespace, len(namespaces))}
	for _, ns := range namespaces {
		m.namespaces[ns.Name] = &memoryNamespace{
			cache:      gocache.New(ns.TTL, purgeInterval),
			ttl:        ns.TTL,
			maxEntries: ns.MaxEntries,
			present:    make(map[string]struct{}),
		}
	}
	return m
}

func (m *MemoryManager) namespace(name string) (*memoryNamespace, error) {
	ns, ok := m.namespaces[name]
	if !ok {
		return nil, fmt.Errorf("unknown cache namespace: %s", name)
	}
	return ns, nil
}

func (m *MemoryManager) Get(_ context.Context, namespace, key string, dest interface{}) (bool, error) {
	ns, err := m.namespace(namespace)
	if err != nil {
		return false, err
	}
	raw, found := ns.cache.Get(key)
	if !found {
		return false, nil
	}
	if err := json.Unmarshal(raw.([]byte), dest); err != nil {
		return false, fmt.Errorf("decode cached value %s/%s: %w", namespace, key, err)
	}
	return true, nil
}

func (m *MemoryManager) Set(ctx context.Context, namespace, key string, value interface{}) error {
	return m.SetWithTTL(ctx, namespace, key, value, 0)
}

func (m *MemoryManager) SetWithTTL(_ context.Context, namespace, key string, value interface{}, ttl time.Duration) error {
	ns, err := m.namespace(namespace)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value %s/%s: %w", namespace, key, err)
	}
	if ttl <= 0 {
		ttl = ns.ttl
	}

	ns.mu.Lock()
	if _, exists := ns.present[key]; !exists {
		for ns.maxEntries > 0 && len(ns.present) >= ns.maxEntries {
			ns.evictOldestLocked()
		}
		ns.present[key] = struct{}{}
		ns.order = append(ns.order, key)
	}
	ns.mu.Unlock()

	ns.cache.Set(key, raw, ttl)
	return nil
}

func (m *MemoryManager) Delete(_ context.Context, namespace, key string) error {
	ns, err := m.namespace(namespace)
	if err != nil {
		return err
	}
	ns.mu.Lock()
	delete(ns.present, key)
	ns.mu.Unlock()
	ns.cache.Delete(key)
	return nil
}

// evictOldestLocked pops queue entries until one still present is found.
// Keys removed via Delete stay in the queue as tombstones and are
// skipped here.
func (ns *memoryNamespace) evictOldestLocked() {
	for len(ns.order) > 0 {
		oldest := ns.order[0]
		ns.order = ns.order[1:]
		if _, ok := ns.present[oldest]; ok {
			delete(ns.present, oldest)
			ns.cache.Delete(oldest)
			return
		}
	}
}
