package dto

import "github.com/google/uuid"

// PublishEmbedCorpusMessage asks the consumer to embed one corpus
// question asynchronously.
type PublishEmbedCorpusMessage struct {
	CorpusEntryId uuid.UUID `json:"corpus_entry_id"`
}
