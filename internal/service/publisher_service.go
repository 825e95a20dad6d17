package service

import (
	"encoding/json"
	"fmt"

	"soukbot-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IPublisherService interface {
	PublishEmbedCorpusEntry(corpusEntryId uuid.UUID) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (ps *publisherService) PublishEmbedCorpusEntry(corpusEntryId uuid.UUID) error {
	payload := dto.PublishEmbedCorpusMessage{CorpusEntryId: corpusEntryId}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal embed message: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), raw)
	return ps.pubSub.Publish(ps.topicName, msg)
}
