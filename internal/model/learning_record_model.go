package model

import (
	"time"

	"github.com/google/uuid"
)

type LearningRecord struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Query      string    `gorm:"type:text;not null"`
	Verdict    string    `gorm:"type:text;not null;index"`
	Confidence float64   `gorm:"not null;default:0"`
	BestMatch  string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index"`
}

func (LearningRecord) TableName() string {
	return "learning_records"
}
