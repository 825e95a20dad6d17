package commerce

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soukbot-be/internal/pkg/logger"
	"soukbot-be/pkg/cache"
	"soukbot-be/pkg/monitoring"
)

type stubPartnerStore struct {
	partners []Partner
	err      error
	calls    int
}

func (s *stubPartnerStore) SearchPartners(context.Context, Criteria) ([]Partner, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.partners, nil
}

func newTestSearcher(store PartnerStore) *Searcher {
	manager := cache.NewMemoryManager([]cache.Namespace{
		{Name: cache.NamespacePartnerSearch, TTL: 10 * time.Minute, MaxEntries: 200},
	})
	return NewSearcher(store, manager, monitoring.NopSink{}, 3*time.Second, logger.NewNopLogger())
}

func testCriteria() Criteria {
	return Criteria{ProductType: "vêtements", BudgetMin: 50, BudgetMax: 200, City: "Casablanca", Country: "Maroc"}
}

func TestSearchReturnsPartners(t *testing.T) {
	store := &stubPartnerStore{partners: []Partner{
		{ID: "1", Name: "Atlas Mode", City: "Casablanca", Country: "Maroc", PriceRangeMin: 30, PriceRangeMax: 180},
	}}

	res := newTestSearcher(store).Search(context.Background(), testCriteria())
	assert.True(t, res.Success)
	assert.Equal(t, 1, res.Count)
	require.Len(t, res.Partners, 1)
	assert.Equal(t, "Atlas Mode", res.Partners[0].Name)
}

func TestSearchCachesByCriteria(t *testing.T) {
	store := &stubPartnerStore{partners: []Partner{{ID: "1", Name: "Atlas Mode"}}}
	s := newTestSearcher(store)
	ctx := context.Background()

	first := s.Search(ctx, testCriteria())
	second := s.Search(ctx, testCriteria())
	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.calls, "second search must come from cache")

	other := testCriteria()
	other.City = "Rabat"
	s.Search(ctx, other)
	assert.Equal(t, 2, store.calls, "different criteria must miss the cache")
}

func TestSearchStoreFailure(t *testing.T) {
	store := &stubPartnerStore{err: errors.New("db unreachable")}

	res := newTestSearcher(store).Search(context.Background(), testCriteria())
	assert.False(t, res.Success)
	assert.Empty(t, res.Partners)
	assert.Zero(t, res.Count)
	assert.Contains(t, res.Error, "db unreachable")
}

func TestSearchFailureNotCached(t *testing.T) {
	store := &stubPartnerStore{err: errors.New("transient")}
	s := newTestSearcher(store)
	ctx := context.Background()

	s.Search(ctx, testCriteria())
	store.err = nil
	store.partners = []Partner{{ID: "1", Name: "Atlas Mode"}}

	res := s.Search(ctx, testCriteria())
	assert.True(t, res.Success, "a failed lookup must not poison the cache")
	assert.Equal(t, 2, store.calls)
}

func TestCacheKeyStable(t *testing.T) {
	assert.Equal(t, testCriteria().CacheKey(), testCriteria().CacheKey())

	other := testCriteria()
	other.BudgetMax = 300
	assert.NotEqual(t, testCriteria().CacheKey(), other.CacheKey())
}

func TestGenerateSuggestionsZeroResults(t *testing.T) {
	suggestions := GenerateSuggestions(testCriteria(), 0)
	require.Len(t, suggestions, 3)

	assert.Equal(t, ActionExpandBudget, suggestions[0].Action)
	assert.Equal(t, 300, suggestions[0].NewBudgetMax)
	assert.Equal(t, ActionExpandLocation, suggestions[1].Action)
	assert.Equal(t, ActionSimilarProducts, suggestions[2].Action)
}

func TestGenerateSuggestionsRespectOmittedCriteria(t *testing.T) {
	c := Criteria{ProductType: "vêtements"}
	suggestions := GenerateSuggestions(c, 0)
	require.Len(t, suggestions, 1)
	assert.Equal(t, ActionSimilarProducts, suggestions[0].Action)
}

func TestGenerateSuggestionsFewResults(t *testing.T) {
	suggestions := GenerateSuggestions(testCriteria(), 2)
	require.Len(t, suggestions, 1)
	assert.Equal(t, ActionExpandSearch, suggestions[0].Action)
}

func TestGenerateSuggestionsEnoughResults(t *testing.T) {
	assert.Empty(t, GenerateSuggestions(testCriteria(), 5))
}

func TestSimilarProductTypes(t *testing.T) {
	assert.Equal(t, []string{"informatique", "smartphones"}, SimilarProductTypes("électronique"))
	assert.Empty(t, SimilarProductTypes("inconnu"))
}

func TestFormatPartnersForDisplay(t *testing.T) {
	partners := []Partner{{
		ID: "1", Name: "ElectroMaroc", Description: "Électroménager et high-tech",
		Website: "https://electromaroc.ma", City: "Casablanca", Country: "Maroc",
		PriceRangeMin: 100, PriceRangeMax: 5000, Latitude: 33.5731, Longitude: -7.5898,
	}}

	displays := FormatPartnersForDisplay(partners)
	require.Len(t, displays, 1)
	d := displays[0]
	assert.Equal(t, "Casablanca, Maroc", d.Location)
	assert.Equal(t, "100€ - 5000€", d.PriceRange)
	assert.Contains(t, d.GoogleMapsURL, "33.5731")
	assert.Contains(t, d.DisplayText, "ElectroMaroc")
	assert.Contains(t, d.DisplayText, d.GoogleMapsURL)
}
