package model

import (
	"time"

	"github.com/google/uuid"
)

type Conversation struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       string     `gorm:"type:text;not null;index"`
	Status       string     `gorm:"type:text;not null;default:'active';index"`
	MessageCount int        `gorm:"default:0"`
	StartedAt    time.Time  `gorm:"not null"`
	EndedAt      *time.Time
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Conversation) TableName() string {
	return "conversations"
}
