package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Knowledge struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title     string         `gorm:"type:text;not null"`
	Content   string         `gorm:"type:text;not null"`
	Category  string         `gorm:"type:text;not null;index"`
	Keywords  datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (Knowledge) TableName() string {
	return "knowledge_entries"
}
