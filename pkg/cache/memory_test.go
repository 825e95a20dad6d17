package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(ttl time.Duration, maxEntries int) *MemoryManager {
	return NewMemoryManager([]Namespace{
		{Name: NamespaceKnowledge, TTL: ttl, MaxEntries: maxEntries},
		{Name: NamespacePartnerSearch, TTL: ttl, MaxEntries: maxEntries},
	})
}

func TestMemorySetGetRoundTrip(t *testing.T) {
	m := newTestManager(time.Minute, 10)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, NamespaceKnowledge, "k1", "une réponse"))

	var got string
	found, err := m.Get(ctx, NamespaceKnowledge, "k1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "une réponse", got)
}

func TestMemoryMiss(t *testing.T) {
	m := newTestManager(time.Minute, 10)

	var got string
	found, err := m.Get(context.Background(), NamespaceKnowledge, "absent", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryNamespacesIsolated(t *testing.T) {
	m := newTestManager(time.Minute, 10)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, NamespaceKnowledge, "k", "a"))

	var got string
	found, err := m.Get(ctx, NamespacePartnerSearch, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryTTLExpiry(t *testing.T) {
	m := newTestManager(20*time.Millisecond, 10)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, NamespaceKnowledge, "k", "v"))
	time.Sleep(40 * time.Millisecond)

	var got string
	found, err := m.Get(ctx, NamespaceKnowledge, "k", &got)
	require.NoError(t, err)
	assert.False(t, found, "entry must be gone after TTL")
}

func TestMemoryPerKeyTTLOverride(t *testing.T) {
	m := newTestManager(time.Hour, 10)
	ctx := context.Background()

	require.NoError(t, m.SetWithTTL(ctx, NamespaceKnowledge, "k", "v", 20*time.Millisecond))
	time.Sleep(40 * time.Millisecond)

	var got string
	found, _ := m.Get(ctx, NamespaceKnowledge, "k", &got)
	assert.False(t, found)
}

func TestMemoryFIFOEviction(t *testing.T) {
	m := newTestManager(time.Minute, 3)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		require.NoError(t, m.Set(ctx, NamespaceKnowledge, fmt.Sprintf("k%d", i), i))
	}

	var got int
	found, _ := m.Get(ctx, NamespaceKnowledge, "k0", &got)
	assert.False(t, found, "oldest entry must be evicted")

	for i := 1; i < 4; i++ {
		found, err := m.Get(ctx, NamespaceKnowledge, fmt.Sprintf("k%d", i), &got)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, i, got)
	}
}

func TestMemoryOverwriteDoesNotEvict(t *testing.T) {
	m := newTestManager(time.Minute, 2)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, NamespaceKnowledge, "a", 1))
	require.NoError(t, m.Set(ctx, NamespaceKnowledge, "b", 2))
	require.NoError(t, m.Set(ctx, NamespaceKnowledge, "a", 3))

	var got int
	found, _ := m.Get(ctx, NamespaceKnowledge, "a", &got)
	assert.True(t, found)
	assert.Equal(t, 3, got)
	found, _ = m.Get(ctx, NamespaceKnowledge, "b", &got)
	assert.True(t, found)
}

func TestMemoryDeleteThenEvict(t *testing.T) {
	m := newTestManager(time.Minute, 2)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, NamespaceKnowledge, "a", 1))
	require.NoError(t, m.Delete(ctx, NamespaceKnowledge, "a"))
	require.NoError(t, m.Set(ctx, NamespaceKnowledge, "b", 2))
	require.NoError(t, m.Set(ctx, NamespaceKnowledge, "c", 3))
	// Filling over the bound must skip the tombstoned "a" and evict "b".
	require.NoError(t, m.Set(ctx, NamespaceKnowledge, "d", 4))

	var got int
	found, _ := m.Get(ctx, NamespaceKnowledge, "b", &got)
	assert.False(t, found)
	found, _ = m.Get(ctx, NamespaceKnowledge, "d", &got)
	assert.True(t, found)
}

func TestMemoryUnknownNamespace(t *testing.T) {
	m := newTestManager(time.Minute, 10)

	err := m.Set(context.Background(), "nope", "k", "v")
	assert.Error(t, err)
}

func TestMemoryStructValues(t *testing.T) {
	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	m := newTestManager(time.Minute, 10)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, NamespacePartnerSearch, "k", payload{Name: "ElectroMaroc", Count: 3}))

	var got payload
	found, err := m.Get(ctx, NamespacePartnerSearch, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Name: "ElectroMaroc", Count: 3}, got)
}

func TestMemoryConcurrentAccess(t *testing.T) {
	m := newTestManager(time.Minute, 50)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", n%10)
			_ = m.Set(ctx, NamespaceKnowledge, key, n)
			var got int
			_, _ = m.Get(ctx, NamespaceKnowledge, key, &got)
		}(i)
	}
	wg.Wait()
}
