package specification

import "gorm.io/gorm"

// ByProductType matches partners whose category set contains the given
// type, case-insensitively. product_types is a jsonb array of strings.
type ByProductType struct {
	ProductType string
}

func (s ByProductType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(
		"EXISTS (SELECT 1 FROM jsonb_array_elements_text(product_types) AS pt WHERE pt ILIKE ?)",
		"%"+s.ProductType+"%",
	)
}

// ByBudgetOverlap keeps partners whose price range intersects the
// requested budget window.
type ByBudgetOverlap struct {
	BudgetMin int
	BudgetMax int
}

func (s ByBudgetOverlap) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(
		"NOT (price_range_max < ? OR price_range_min > ?)",
		s.BudgetMin, s.BudgetMax,
	)
}

// ByCity matches the partner city, case-insensitively.
type ByCity struct {
	City string
}

func (s ByCity) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(city) = LOWER(?)", s.City)
}

// ByCountry matches the partner country, case-insensitively.
type ByCountry struct {
	Country string
}

func (s ByCountry) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(country) = LOWER(?)", s.Country)
}
