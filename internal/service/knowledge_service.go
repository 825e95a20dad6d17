package service

import (
	"context"
	"fmt"

	"soukbot-be/internal/dto"
	"soukbot-be/internal/entity"
	"soukbot-be/internal/pkg/logger"
	"soukbot-be/internal/repository/unitofwork"
)

// IKnowledgeService manages the company knowledge base and the
// classifier corpus behind it.
type IKnowledgeService interface {
	CreateKnowledge(ctx context.Context, req *dto.CreateKnowledgeRequest) (*dto.KnowledgeDTO, error)
	SearchKnowledge(ctx context.Context, query string, limit int) (*dto.SearchKnowledgeResponse, error)
	AddCorpusEntry(ctx context.Context, question, kind string) error
}

type knowledgeService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewKnowledgeService(uowFactory unitofwork.RepositoryFactory, publisher IPublisherService, logger logger.ILogger) IKnowledgeService {
	return &knowledgeService{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

func (s *knowledgeService) CreateKnowledge(ctx context.Context, req *dto.CreateKnowledgeRequest) (*dto.KnowledgeDTO, error) {
	knowledge := &entity.Knowledge{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Keywords: req.Keywords,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.KnowledgeRepository().Create(ctx, knowledge); err != nil {
		return nil, fmt.Errorf("failed to create knowledge entry: %w", err)
	}

	return toKnowledgeDTO(knowledge), nil
}

func (s *knowledgeService) SearchKnowledge(ctx context.Context, query string, limit int) (*dto.SearchKnowledgeResponse, error) {
	if limit <= 0 {
		limit = 5
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	entries, err := uow.KnowledgeRepository().Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("knowledge search failed: %w", err)
	}

	results := make([]dto.KnowledgeDTO, len(entries))
	for i, e := range entries {
		results[i] = *toKnowledgeDTO(e)
	}
	return &dto.SearchKnowledgeResponse{Results: results, Count: len(results)}, nil
}

// AddCorpusEntry stores a reference question and hands it to the
// consumer for asynchronous embedding.
func (s *knowledgeService) AddCorpusEntry(ctx context.Context, question, kind string) error {
	entry := &entity.CorpusEntry{
		Question: question,
		Kind:     kind,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.CorpusEntryRepository().Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to create corpus entry: %w", err)
	}

	if err := s.publisher.PublishEmbedCorpusEntry(entry.Id); err != nil {
		s.logger.Warn("knowledge", "failed to publish embed request", map[string]interface{}{
			"corpus_entry_id": entry.Id.String(),
			"error":           err.Error(),
		})
	}
	return nil
}

func toKnowledgeDTO(k *entity.Knowledge) *dto.KnowledgeDTO {
	return &dto.KnowledgeDTO{
		Id:       k.Id,
		Title:    k.Title,
		Content:  k.Content,
		Category: k.Category,
		Keywords: k.Keywords,
	}
}
