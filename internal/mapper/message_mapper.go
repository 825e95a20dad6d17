package mapper

import (
	"soukbot-be/internal/entity"
	"soukbot-be/internal/model"
)

type MessageMapper struct{}

func NewMessageMapper() *MessageMapper {
	return &MessageMapper{}
}

func (m *MessageMapper) ToEntity(e *model.Message) *entity.Message {
	if e == nil {
		return nil
	}
	return &entity.Message{
		Id:             e.Id,
		ConversationId: e.ConversationId,
		Sender:         e.Sender,
		Content:        e.Content,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *MessageMapper) ToModel(e *entity.Message) *model.Message {
	if e == nil {
		return nil
	}
	return &model.Message{
		Id:             e.Id,
		ConversationId: e.ConversationId,
		Sender:         e.Sender,
		Content:        e.Content,
		CreatedAt:      e.CreatedAt,
	}
}
