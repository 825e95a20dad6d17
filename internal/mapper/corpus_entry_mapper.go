package mapper

import (
	"soukbot-be/internal/entity"
	"soukbot-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type CorpusEntryMapper struct{}

func NewCorpusEntryMapper() *CorpusEntryMapper {
	return &CorpusEntryMapper{}
}

func (m *CorpusEntryMapper) ToEntity(c *model.CorpusEntry) *entity.CorpusEntry {
	if c == nil {
		return nil
	}
	return &entity.CorpusEntry{
		Id:        c.Id,
		Question:  c.Question,
		Kind:      c.Kind,
		Embedding: c.Embedding.Slice(),
		CreatedAt: c.CreatedAt,
	}
}

func (m *CorpusEntryMapper) ToModel(c *entity.CorpusEntry) *model.CorpusEntry {
	if c == nil {
		return nil
	}
	return &model.CorpusEntry{
		Id:        c.Id,
		Question:  c.Question,
		Kind:      c.Kind,
		Embedding: pgvector.NewVector(c.Embedding),
		CreatedAt: c.CreatedAt,
	}
}
