package service

import (
	"context"
	"encoding/json"
	"log"

	"soukbot-be/internal/dto"
	"soukbot-be/internal/repository/unitofwork"
	"soukbot-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedCorpusMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing corpus embedding for entry: %s", payload.CorpusEntryId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	repo := uow.CorpusEntryRepository()

	entry, err := repo.FindOne(ctx, payload.CorpusEntryId)
	if err != nil {
		log.Printf("[ERROR] Failed to get corpus entry %s: %v", payload.CorpusEntryId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if entry == nil {
		log.Printf("[ERROR] Corpus entry not found: %s", payload.CorpusEntryId)
		msg.Ack() // Entry deleted? Ack.
		return
	}

	if cs.embeddingProvider == nil {
		log.Printf("[INFO] No embedding provider configured, entry %s stored without embedding", payload.CorpusEntryId)
		msg.Ack()
		return
	}

	res, err := cs.embeddingProvider.Generate(entry.Question, "RETRIEVAL_DOCUMENT")
	if err != nil {
		log.Printf("[ERROR] Failed to embed corpus entry %s: %v", payload.CorpusEntryId, err)
		msg.Nack()
		return
	}

	entry.Embedding = res.Embedding.Values
	if err := repo.Update(ctx, entry); err != nil {
		log.Printf("[ERROR] Failed to store embedding for %s: %v", payload.CorpusEntryId, err)
		msg.Nack()
		return
	}

	log.Printf("[INFO] Corpus entry embedded: %s", payload.CorpusEntryId)
	msg.Ack()
}
