package entity

import (
	"time"

	"github.com/google/uuid"
)

type Knowledge struct {
	Id        uuid.UUID
	Title     string
	Content   string
	Category  string
	Keywords  []string
	CreatedAt time.Time
	UpdatedAt *time.Time
}
