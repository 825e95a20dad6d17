package mapper

import (
	"soukbot-be/internal/entity"
	"soukbot-be/internal/model"
)

type LearningRecordMapper struct{}

func NewLearningRecordMapper() *LearningRecordMapper {
	return &LearningRecordMapper{}
}

func (m *LearningRecordMapper) ToEntity(r *model.LearningRecord) *entity.LearningRecord {
	if r == nil {
		return nil
	}
	return &entity.LearningRecord{
		Id:         r.Id,
		Query:      r.Query,
		Verdict:    r.Verdict,
		Confidence: r.Confidence,
		BestMatch:  r.BestMatch,
		CreatedAt:  r.CreatedAt,
	}
}

func (m *LearningRecordMapper) ToModel(r *entity.LearningRecord) *model.LearningRecord {
	if r == nil {
		return nil
	}
	return &model.LearningRecord{
		Id:         r.Id,
		Query:      r.Query,
		Verdict:    r.Verdict,
		Confidence: r.Confidence,
		BestMatch:  r.BestMatch,
		CreatedAt:  r.CreatedAt,
	}
}
