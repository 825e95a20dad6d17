package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Partner struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string         `gorm:"type:text;not null;index"`
	Description   string         `gorm:"type:text"`
	Website       string         `gorm:"type:text"`
	City          string         `gorm:"type:text;not null;index"`
	Country       string         `gorm:"type:text;not null;index"`
	PriceRangeMin int            `gorm:"not null;default:0"`
	PriceRangeMax int            `gorm:"not null;default:0"`
	ProductTypes  datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	Latitude      float64
	Longitude     float64
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Partner) TableName() string {
	return "partners"
}
