package contract

import (
	"context"

	"soukbot-be/internal/entity"
	"soukbot-be/internal/repository/specification"

	"github.com/google/uuid"
)

// PartnerSearchCriteria mirrors the conversation's collected slots.
// Zero-valued fields impose no filter.
type PartnerSearchCriteria struct {
	ProductType string
	BudgetMin   int
	BudgetMax   int
	City        string
	Country     string
}

type PartnerRepository interface {
	Create(ctx context.Context, partner *entity.Partner) error
	Update(ctx context.Context, partner *entity.Partner) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Partner, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Partner, error)
	SearchPartners(ctx context.Context, criteria PartnerSearchCriteria) ([]*entity.Partner, error)
	GetCities(ctx context.Context) ([]string, error)
	GetProductTypes(ctx context.Context) ([]string, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
