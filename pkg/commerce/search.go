package commerce

import (
	"context"
	"encoding/json"
	"time"

	"soukbot-be/internal/pkg/logger"
	"soukbot-be/pkg/cache"
	"soukbot-be/pkg/monitoring"
)

// Criteria is one partner search. Zero-valued fields impose no
// constraint; a BudgetMax of 0 means no budget filter at all.
type Criteria struct {
	ProductType string `json:"productType"`
	BudgetMin   int    `json:"budgetMin"`
	BudgetMax   int    `json:"budgetMax"`
	City        string `json:"city"`
	Country     string `json:"country"`
}

// CacheKey serializes the criteria into a stable cache key. The struct
// has a fixed shape so identical criteria always produce identical keys.
func (c Criteria) CacheKey() string {
	raw, _ := json.Marshal(c)
	return string(raw)
}

// Partner is one matching partner as exposed to the conversation flow.
type Partner struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Website       string   `json:"website"`
	City          string   `json:"city"`
	Country       string   `json:"country"`
	PriceRangeMin int      `json:"priceRangeMin"`
	PriceRangeMax int      `json:"priceRangeMax"`
	ProductTypes  []string `json:"productTypes"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
}

// SearchResult never carries an error past the searcher boundary; a
// failed lookup is reported through Success and Error.
type SearchResult struct {
	Success  bool      `json:"success"`
	Partners []Partner `json:"partners"`
	Count    int       `json:"count"`
	Error    string    `json:"error,omitempty"`
}

// PartnerStore is the storage side of the partner directory.
type PartnerStore interface {
	SearchPartners(ctx context.Context, c Criteria) ([]Partner, error)
}

// Searcher runs cache-checked partner lookups with a hard timeout.
type Searcher struct {
	store   PartnerStore
	cache   cache.Manager
	sink    monitoring.Sink
	timeout time.Duration
	logger  logger.ILogger
}

func NewSearcher(store PartnerStore, cacheManager cache.Manager, sink monitoring.Sink, timeout time.Duration, logger logger.ILogger) *Searcher {
	return &Searcher{
		store:   store,
		cache:   cacheManager,
		sink:    sink,
		timeout: timeout,
		logger:  logger,
	}
}

// Search returns matching partners for the criteria. Store failures and
// timeouts surface as an unsuccessful result, never as an error.
func (s *Searcher) Search(ctx context.Context, c Criteria) SearchResult {
	key := c.CacheKey()

	var cached SearchResult
	if found, err := s.cache.Get(ctx, cache.NamespacePartnerSearch, key, &cached); err == nil && found {
		s.sink.RecordCacheHit(cache.NamespacePartnerSearch)
		return cached
	}
	s.sink.RecordCacheMiss(cache.NamespacePartnerSearch)

	lookupCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	partners, err := s.store.SearchPartners(lookupCtx, c)
	if err != nil {
		s.logger.Error("commerce", "partner search failed", map[string]interface{}{
			"criteria": key,
			"error":    err.Error(),
		})
		s.sink.RecordError("partner_search", "commerce")
		return SearchResult{Success: false, Partners: []Partner{}, Count: 0, Error: err.Error()}
	}

	result := SearchResult{Success: true, Partners: partners, Count: len(partners)}
	if err := s.cache.Set(ctx, cache.NamespacePartnerSearch, key, result); err != nil {
		s.logger.Warn("commerce", "failed to cache partner search", map[string]interface{}{
			"criteria": key,
			"error":    err.Error(),
		})
	}
	return result
}
