package entity

import (
	"time"

	"github.com/google/uuid"
)

// CorpusEntry is one reference question used by the semantic scorer,
// stored with its embedding vector.
type CorpusEntry struct {
	Id        uuid.UUID
	Question  string
	Kind      string
	Embedding []float32
	CreatedAt time.Time
}
