package service

import (
	"context"
	"time"

	"soukbot-be/internal/entity"
	"soukbot-be/internal/pkg/logger"
	"soukbot-be/internal/repository/contract"
	"soukbot-be/internal/repository/unitofwork"
	"soukbot-be/pkg/classifier"
	"soukbot-be/pkg/commerce"
	"soukbot-be/pkg/semantic"
)

// The pkg-level components speak their own small interfaces. These
// adapters back them with the repository layer.

// partnerStoreAdapter implements commerce.PartnerStore.
type partnerStoreAdapter struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewPartnerStoreAdapter(uowFactory unitofwork.RepositoryFactory) commerce.PartnerStore {
	return &partnerStoreAdapter{uowFactory: uowFactory}
}

func (a *partnerStoreAdapter) SearchPartners(ctx context.Context, c commerce.Criteria) ([]commerce.Partner, error) {
	repo := a.uowFactory.NewUnitOfWork(ctx).PartnerRepository()
	found, err := repo.SearchPartners(ctx, contract.PartnerSearchCriteria{
		ProductType: c.ProductType,
		BudgetMin:   c.BudgetMin,
		BudgetMax:   c.BudgetMax,
		City:        c.City,
		Country:     c.Country,
	})
	if err != nil {
		return nil, err
	}
	partners := make([]commerce.Partner, len(found))
	for i, p := range found {
		partners[i] = toCommercePartner(p)
	}
	return partners, nil
}

func toCommercePartner(p *entity.Partner) commerce.Partner {
	return commerce.Partner{
		ID:            p.Id.String(),
		Name:          p.Name,
		Description:   p.Description,
		Website:       p.Website,
		City:          p.City,
		Country:       p.Country,
		PriceRangeMin: p.PriceRangeMin,
		PriceRangeMax: p.PriceRangeMax,
		ProductTypes:  p.ProductTypes,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
	}
}

// knowledgeStoreAdapter implements classifier.KnowledgeStore.
type knowledgeStoreAdapter struct {
	uowFactory unitofwork.RepositoryFactory
	limit      int
}

func NewKnowledgeStoreAdapter(uowFactory unitofwork.RepositoryFactory, limit int) classifier.KnowledgeStore {
	return &knowledgeStoreAdapter{uowFactory: uowFactory, limit: limit}
}

func (a *knowledgeStoreAdapter) Search(ctx context.Context, text string) ([]classifier.KnowledgeResult, error) {
	repo := a.uowFactory.NewUnitOfWork(ctx).KnowledgeRepository()
	found, err := repo.Search(ctx, text, a.limit)
	if err != nil {
		return nil, err
	}
	return toKnowledgeResults(found), nil
}

func (a *knowledgeStoreAdapter) GetByCategory(ctx context.Context, name string) ([]classifier.KnowledgeResult, error) {
	repo := a.uowFactory.NewUnitOfWork(ctx).KnowledgeRepository()
	found, err := repo.GetByCategory(ctx, name, a.limit)
	if err != nil {
		return nil, err
	}
	return toKnowledgeResults(found), nil
}

func toKnowledgeResults(entries []*entity.Knowledge) []classifier.KnowledgeResult {
	results := make([]classifier.KnowledgeResult, len(entries))
	for i, k := range entries {
		results[i] = classifier.KnowledgeResult{
			Title:    k.Title,
			Content:  k.Content,
			Category: k.Category,
		}
	}
	return results
}

// learningRecorderAdapter implements classifier.Recorder. Writes run on
// their own goroutine with a short deadline so a slow store never
// stretches a turn; failures are logged and dropped.
type learningRecorderAdapter struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewLearningRecorderAdapter(uowFactory unitofwork.RepositoryFactory, logger logger.ILogger) classifier.Recorder {
	return &learningRecorderAdapter{uowFactory: uowFactory, logger: logger}
}

func (a *learningRecorderAdapter) Record(_ context.Context, rec classifier.LearningRecord) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		repo := a.uowFactory.NewUnitOfWork(ctx).LearningRecordRepository()
		err := repo.Create(ctx, &entity.LearningRecord{
			Query:      rec.Query,
			Verdict:    rec.Verdict,
			Confidence: rec.Confidence,
			BestMatch:  rec.BestMatch,
		})
		if err != nil {
			a.logger.Warn("learning", "failed to persist learning record", map[string]interface{}{
				"query": rec.Query,
				"error": err.Error(),
			})
		}
	}()
}

// corpusStoreAdapter implements semantic.CorpusStore.
type corpusStoreAdapter struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewCorpusStoreAdapter(uowFactory unitofwork.RepositoryFactory) semantic.CorpusStore {
	return &corpusStoreAdapter{uowFactory: uowFactory}
}

func (a *corpusStoreAdapter) SearchSimilar(ctx context.Context, vector []float32, kind string, limit int) ([]semantic.ScoredEntry, error) {
	repo := a.uowFactory.NewUnitOfWork(ctx).CorpusEntryRepository()
	scored, err := repo.SearchSimilarWithScore(ctx, vector, kind, limit)
	if err != nil {
		return nil, err
	}
	entries := make([]semantic.ScoredEntry, len(scored))
	for i, s := range scored {
		entries[i] = semantic.ScoredEntry{
			Question:   s.Entry.Question,
			Kind:       s.Entry.Kind,
			Similarity: s.Similarity,
		}
	}
	return entries, nil
}
