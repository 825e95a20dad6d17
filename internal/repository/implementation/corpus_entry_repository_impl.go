package implementation

import (
	"context"
	"errors"

	"soukbot-be/internal/mapper"
	"soukbot-be/internal/model"
	"soukbot-be/internal/repository/contract"

	"soukbot-be/internal/entity"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type CorpusEntryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CorpusEntryMapper
}

func NewCorpusEntryRepository(db *gorm.DB) contract.CorpusEntryRepository {
	return &CorpusEntryRepositoryImpl{
		db:     db,
		mapper: mapper.NewCorpusEntryMapper(),
	}
}

func (r *CorpusEntryRepositoryImpl) Create(ctx context.Context, entry *entity.CorpusEntry) error {
	m := r.mapper.ToModel(entry)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

func (r *CorpusEntryRepositoryImpl) CreateBulk(ctx context.Context, entries []*entity.CorpusEntry) error {
	models := make([]*model.CorpusEntry, len(entries))
	for i, e := range entries {
		models[i] = r.mapper.ToModel(e)
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*entries[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *CorpusEntryRepositoryImpl) Update(ctx context.Context, entry *entity.CorpusEntry) error {
	m := r.mapper.ToModel(entry)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

func (r *CorpusEntryRepositoryImpl) FindOne(ctx context.Context, id uuid.UUID) (*entity.CorpusEntry, error) {
	var m model.CorpusEntry
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CorpusEntryRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CorpusEntry{}, id).Error
}

// SearchSimilarWithScore ranks corpus entries of the given kind by
// cosine similarity to the query vector. pgvector's <=> operator is
// cosine distance, so similarity is 1 - distance.
func (r *CorpusEntryRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, kind string, limit int) ([]*contract.ScoredCorpusEntry, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.CorpusEntry
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("corpus_entries").
		Select("corpus_entries.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Where("kind = ?", kind).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredCorpusEntry, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredCorpusEntry{
			Entry:      r.mapper.ToEntity(&res.CorpusEntry),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}

func (r *CorpusEntryRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CorpusEntry{}).Count(&count).Error
	return count, err
}
