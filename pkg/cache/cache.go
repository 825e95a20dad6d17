package cache

import (
	"context"
	"time"
)

// Well-known namespaces. TTLs and size bounds come from configuration.
const (
	NamespaceConversation  = "conversation"
	NamespaceKnowledge     = "knowledge"
	NamespacePartnerSearch = "partnerSearch"
)

// Namespace groups cached values sharing a TTL and a size bound.
type Namespace struct {
	Name       string
	TTL        time.Duration
	MaxEntries int
}

// Manager is a namespaced TTL cache. Values are JSON-serialized on Set
// and decoded into dest on Get, so both backends behave identically and
// callers never share mutable state through the cache.
type Manager interface {
	// Get reports whether the key was present and, if so, decodes the
	// stored value into dest.
	Get(ctx context.Context, namespace, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, namespace, key string, value interface{}) error
	SetWithTTL(ctx context.Context, namespace, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, namespace, key string) error
}
