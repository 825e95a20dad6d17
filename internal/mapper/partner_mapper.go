package mapper

import (
	"encoding/json"
	"time"

	"soukbot-be/internal/entity"
	"soukbot-be/internal/model"
)

type PartnerMapper struct{}

func NewPartnerMapper() *PartnerMapper {
	return &PartnerMapper{}
}

func (m *PartnerMapper) ToEntity(p *model.Partner) *entity.Partner {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	var productTypes []string
	if len(p.ProductTypes) > 0 {
		// A malformed column yields an empty set rather than an error.
		_ = json.Unmarshal(p.ProductTypes, &productTypes)
	}

	return &entity.Partner{
		Id:            p.Id,
		Name:          p.Name,
		Description:   p.Description,
		Website:       p.Website,
		City:          p.City,
		Country:       p.Country,
		PriceRangeMin: p.PriceRangeMin,
		PriceRangeMax: p.PriceRangeMax,
		ProductTypes:  productTypes,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *PartnerMapper) ToModel(p *entity.Partner) *model.Partner {
	if p == nil {
		return nil
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	productTypes, _ := json.Marshal(p.ProductTypes)

	return &model.Partner{
		Id:            p.Id,
		Name:          p.Name,
		Description:   p.Description,
		Website:       p.Website,
		City:          p.City,
		Country:       p.Country,
		PriceRangeMin: p.PriceRangeMin,
		PriceRangeMax: p.PriceRangeMax,
		ProductTypes:  productTypes,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}
