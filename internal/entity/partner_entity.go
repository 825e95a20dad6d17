package entity

import (
	"time"

	"github.com/google/uuid"
)

type Partner struct {
	Id            uuid.UUID
	Name          string
	Description   string
	Website       string
	City          string
	Country       string
	PriceRangeMin int
	PriceRangeMax int
	ProductTypes  []string
	Latitude      float64
	Longitude     float64
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
