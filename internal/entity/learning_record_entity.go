package entity

import (
	"time"

	"github.com/google/uuid"
)

type LearningRecord struct {
	Id         uuid.UUID
	Query      string
	Verdict    string
	Confidence float64
	BestMatch  string
	CreatedAt  time.Time
}
