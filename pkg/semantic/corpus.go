package semantic

import (
	"context"

	"soukbot-be/internal/pkg/logger"
	"soukbot-be/pkg/embedding"
)

// ScoredEntry is one corpus question with its cosine similarity to the
// query, as computed by the store.
type ScoredEntry struct {
	Question   string
	Kind       string
	Similarity float64
}

// CorpusStore performs vector similarity search over the question corpus.
type CorpusStore interface {
	SearchSimilar(ctx context.Context, vector []float32, kind string, limit int) ([]ScoredEntry, error)
}

// CorpusScorer embeds the query and compares it against both halves of
// the corpus: the best in-scope hit gives the similarity signal, the
// best off-topic hit gives the irrelevant signal.
type CorpusScorer struct {
	provider         embedding.EmbeddingProvider
	store            CorpusStore
	irrelevantWeight float64
	logger           logger.ILogger
}

func NewCorpusScorer(provider embedding.EmbeddingProvider, store CorpusStore, irrelevantWeight float64, logger logger.ILogger) *CorpusScorer {
	return &CorpusScorer{
		provider:         provider,
		store:            store,
		irrelevantWeight: irrelevantWeight,
		logger:           logger,
	}
}

func (s *CorpusScorer) Score(ctx context.Context, query string) (Score, error) {
	res, err := s.provider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return Score{}, err
	}
	vector := res.Embedding.Values

	score := Score{IrrelevantWeight: s.irrelevantWeight}

	inScope, err := s.store.SearchSimilar(ctx, vector, KindInScope, 1)
	if err != nil {
		return Score{}, err
	}
	if len(inScope) > 0 {
		score.Similarity = inScope[0].Similarity
		score.BestMatch = inScope[0].Question
	}

	irrelevant, err := s.store.SearchSimilar(ctx, vector, KindIrrelevant, 1)
	if err != nil {
		return Score{}, err
	}
	if len(irrelevant) > 0 {
		score.IrrelevantSimilarity = irrelevant[0].Similarity
	}

	s.logger.Debug("semantic", "corpus score computed", map[string]interface{}{
		"query":                 query,
		"similarity":            score.Similarity,
		"best_match":            score.BestMatch,
		"irrelevant_similarity": score.IrrelevantSimilarity,
	})
	return score, nil
}
