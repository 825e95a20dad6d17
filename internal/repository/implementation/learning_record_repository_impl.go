package implementation

import (
	"context"

	"soukbot-be/internal/entity"
	"soukbot-be/internal/mapper"
	"soukbot-be/internal/model"
	"soukbot-be/internal/repository/contract"
	"soukbot-be/internal/repository/specification"

	"gorm.io/gorm"
)

type LearningRecordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LearningRecordMapper
}

func NewLearningRecordRepository(db *gorm.DB) contract.LearningRecordRepository {
	return &LearningRecordRepositoryImpl{
		db:     db,
		mapper: mapper.NewLearningRecordMapper(),
	}
}

func (r *LearningRecordRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *LearningRecordRepositoryImpl) Create(ctx context.Context, record *entity.LearningRecord) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *LearningRecordRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LearningRecord, error) {
	var models []*model.LearningRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.LearningRecord, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *LearningRecordRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.LearningRecord{}).Count(&count).Error
	return count, err
}
