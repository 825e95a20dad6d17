package unitofwork

import (
	"context"

	"soukbot-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ConversationRepository() contract.ConversationRepository
	MessageRepository() contract.MessageRepository
	PartnerRepository() contract.PartnerRepository
	KnowledgeRepository() contract.KnowledgeRepository
	LearningRecordRepository() contract.LearningRecordRepository
	CorpusEntryRepository() contract.CorpusEntryRepository
}
