package dto

import "github.com/google/uuid"

type SearchPartnersRequest struct {
	ProductType string `json:"product_type" validate:"required"`
	BudgetMin   int    `json:"budget_min" validate:"gte=0"`
	BudgetMax   int    `json:"budget_max" validate:"gte=0"`
	City        string `json:"city"`
	Country     string `json:"country"`
}

type PartnerDTO struct {
	Id            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Website       string    `json:"website"`
	City          string    `json:"city"`
	Country       string    `json:"country"`
	PriceRangeMin int       `json:"price_range_min"`
	PriceRangeMax int       `json:"price_range_max"`
	ProductTypes  []string  `json:"product_types"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
}

type SearchPartnersResponse struct {
	Success  bool         `json:"success"`
	Partners []PartnerDTO `json:"partners"`
	Count    int          `json:"count"`
}

type CitiesResponse struct {
	Cities []string `json:"cities"`
}

type ProductTypesResponse struct {
	ProductTypes []string `json:"product_types"`
}

type CreatePartnerRequest struct {
	Name          string   `json:"name" validate:"required"`
	Description   string   `json:"description"`
	Website       string   `json:"website"`
	City          string   `json:"city" validate:"required"`
	Country       string   `json:"country" validate:"required"`
	PriceRangeMin int      `json:"price_range_min" validate:"gte=0"`
	PriceRangeMax int      `json:"price_range_max" validate:"gte=0,gtefield=PriceRangeMin"`
	ProductTypes  []string `json:"product_types" validate:"required,min=1"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
}

// UpdatePartnerRequest applies only the fields the caller sent:
// empty strings and nil values leave the stored value untouched.
type UpdatePartnerRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Website       string   `json:"website"`
	City          string   `json:"city"`
	Country       string   `json:"country"`
	PriceRangeMin *int     `json:"price_range_min" validate:"omitempty,gte=0"`
	PriceRangeMax *int     `json:"price_range_max" validate:"omitempty,gte=0"`
	ProductTypes  []string `json:"product_types"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
}
