package implementation

import (
	"context"
	"errors"

	"soukbot-be/internal/entity"
	"soukbot-be/internal/mapper"
	"soukbot-be/internal/model"
	"soukbot-be/internal/repository/contract"
	"soukbot-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PartnerRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PartnerMapper
}

func NewPartnerRepository(db *gorm.DB) contract.PartnerRepository {
	return &PartnerRepositoryImpl{
		db:     db,
		mapper: mapper.NewPartnerMapper(),
	}
}

func (r *PartnerRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PartnerRepositoryImpl) Create(ctx context.Context, partner *entity.Partner) error {
	m := r.mapper.ToModel(partner)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*partner = *r.mapper.ToEntity(m)
	return nil
}

func (r *PartnerRepositoryImpl) Update(ctx context.Context, partner *entity.Partner) error {
	m := r.mapper.ToModel(partner)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*partner = *r.mapper.ToEntity(m)
	return nil
}

func (r *PartnerRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Partner{}, id).Error
}

func (r *PartnerRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Partner, error) {
	var m model.Partner
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PartnerRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Partner, error) {
	var models []*model.Partner
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Partner, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

// SearchPartners AND-combines the criteria filters; zero-valued fields
// impose no constraint. Results are ordered by name so identical
// criteria always return the same listing.
func (r *PartnerRepositoryImpl) SearchPartners(ctx context.Context, criteria contract.PartnerSearchCriteria) ([]*entity.Partner, error) {
	var specs []specification.Specification
	if criteria.ProductType != "" {
		specs = append(specs, specification.ByProductType{ProductType: criteria.ProductType})
	}
	if criteria.BudgetMax > 0 {
		specs = append(specs, specification.ByBudgetOverlap{BudgetMin: criteria.BudgetMin, BudgetMax: criteria.BudgetMax})
	}
	if criteria.City != "" {
		specs = append(specs, specification.ByCity{City: criteria.City})
	}
	if criteria.Country != "" {
		specs = append(specs, specification.ByCountry{Country: criteria.Country})
	}
	specs = append(specs, specification.OrderBy{Field: "name"})

	return r.FindAll(ctx, specs...)
}

func (r *PartnerRepositoryImpl) GetCities(ctx context.Context) ([]string, error) {
	var cities []string
	err := r.db.WithContext(ctx).
		Model(&model.Partner{}).
		Distinct("city").
		Order("city ASC").
		Pluck("city", &cities).Error
	return cities, err
}

// GetProductTypes flattens the jsonb product_types arrays of every
// partner into a distinct sorted list.
func (r *PartnerRepositoryImpl) GetProductTypes(ctx context.Context) ([]string, error) {
	var types []string
	err := r.db.WithContext(ctx).
		Raw("SELECT DISTINCT jsonb_array_elements_text(product_types) AS product_type FROM partners ORDER BY product_type ASC").
		Scan(&types).Error
	return types, err
}

func (r *PartnerRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Partner{}).Count(&count).Error
	return count, err
}
