package contract

import (
	"context"

	"soukbot-be/internal/entity"
	"soukbot-be/internal/repository/specification"
)

type LearningRecordRepository interface {
	Create(ctx context.Context, record *entity.LearningRecord) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LearningRecord, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
