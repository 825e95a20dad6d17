package contract

import (
	"context"

	"soukbot-be/internal/entity"
	"soukbot-be/internal/repository/specification"

	"github.com/google/uuid"
)

type KnowledgeRepository interface {
	Create(ctx context.Context, knowledge *entity.Knowledge) error
	Update(ctx context.Context, knowledge *entity.Knowledge) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, text string, limit int) ([]*entity.Knowledge, error)
	GetByCategory(ctx context.Context, category string, limit int) ([]*entity.Knowledge, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Knowledge, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
