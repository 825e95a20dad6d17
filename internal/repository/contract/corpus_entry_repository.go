package contract

import (
	"context"

	"soukbot-be/internal/entity"

	"github.com/google/uuid"
)

// ScoredCorpusEntry pairs a corpus entry with its cosine similarity to
// a query vector.
type ScoredCorpusEntry struct {
	Entry      *entity.CorpusEntry
	Similarity float64
}

type CorpusEntryRepository interface {
	Create(ctx context.Context, entry *entity.CorpusEntry) error
	CreateBulk(ctx context.Context, entries []*entity.CorpusEntry) error
	Update(ctx context.Context, entry *entity.CorpusEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, id uuid.UUID) (*entity.CorpusEntry, error)
	SearchSimilarWithScore(ctx context.Context, embedding []float32, kind string, limit int) ([]*ScoredCorpusEntry, error)
	Count(ctx context.Context) (int64, error)
}
