package implementation

import (
	"context"

	"soukbot-be/internal/entity"
	"soukbot-be/internal/mapper"
	"soukbot-be/internal/model"
	"soukbot-be/internal/repository/contract"
	"soukbot-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type KnowledgeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeMapper
}

func NewKnowledgeRepository(db *gorm.DB) contract.KnowledgeRepository {
	return &KnowledgeRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeMapper(),
	}
}

func (r *KnowledgeRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *KnowledgeRepositoryImpl) Create(ctx context.Context, knowledge *entity.Knowledge) error {
	m := r.mapper.ToModel(knowledge)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*knowledge = *r.mapper.ToEntity(m)
	return nil
}

func (r *KnowledgeRepositoryImpl) Update(ctx context.Context, knowledge *entity.Knowledge) error {
	m := r.mapper.ToModel(knowledge)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*knowledge = *r.mapper.ToEntity(m)
	return nil
}

func (r *KnowledgeRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Knowledge{}, id).Error
}

// Search matches the text against titles, content and the keyword set.
func (r *KnowledgeRepositoryImpl) Search(ctx context.Context, text string, limit int) ([]*entity.Knowledge, error) {
	if limit <= 0 {
		limit = 5
	}
	var models []*model.Knowledge
	pattern := "%" + text + "%"
	err := r.db.WithContext(ctx).
		Where("title ILIKE ? OR content ILIKE ? OR keywords::text ILIKE ?", pattern, pattern, pattern).
		Order("title ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	entities := make([]*entity.Knowledge, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *KnowledgeRepositoryImpl) GetByCategory(ctx context.Context, category string, limit int) ([]*entity.Knowledge, error) {
	if limit <= 0 {
		limit = 5
	}
	var models []*model.Knowledge
	err := r.db.WithContext(ctx).
		Where("LOWER(category) = LOWER(?)", category).
		Order("title ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	entities := make([]*entity.Knowledge, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *KnowledgeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Knowledge, error) {
	var models []*model.Knowledge
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Knowledge, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *KnowledgeRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Knowledge{}).Count(&count).Error
	return count, err
}
