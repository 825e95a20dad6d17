package mapper

import (
	"encoding/json"
	"time"

	"soukbot-be/internal/entity"
	"soukbot-be/internal/model"
)

type KnowledgeMapper struct{}

func NewKnowledgeMapper() *KnowledgeMapper {
	return &KnowledgeMapper{}
}

func (m *KnowledgeMapper) ToEntity(k *model.Knowledge) *entity.Knowledge {
	if k == nil {
		return nil
	}

	var updatedAt *time.Time
	if !k.UpdatedAt.IsZero() {
		t := k.UpdatedAt
		updatedAt = &t
	}

	var keywords []string
	if len(k.Keywords) > 0 {
		_ = json.Unmarshal(k.Keywords, &keywords)
	}

	return &entity.Knowledge{
		Id:        k.Id,
		Title:     k.Title,
		Content:   k.Content,
		Category:  k.Category,
		Keywords:  keywords,
		CreatedAt: k.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *KnowledgeMapper) ToModel(k *entity.Knowledge) *model.Knowledge {
	if k == nil {
		return nil
	}

	var updatedAt time.Time
	if k.UpdatedAt != nil {
		updatedAt = *k.UpdatedAt
	}

	keywords, _ := json.Marshal(k.Keywords)

	return &model.Knowledge{
		Id:        k.Id,
		Title:     k.Title,
		Content:   k.Content,
		Category:  k.Category,
		Keywords:  keywords,
		CreatedAt: k.CreatedAt,
		UpdatedAt: updatedAt,
	}
}
