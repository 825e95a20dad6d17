package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type CorpusEntry struct {
	Id        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Question  string          `gorm:"type:text;not null"`
	Kind      string          `gorm:"type:text;not null;index"`
	Embedding pgvector.Vector `gorm:"type:vector(768)"` // text-embedding-004 dimensionality
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}

func (CorpusEntry) TableName() string {
	return "corpus_entries"
}
