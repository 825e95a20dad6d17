package mapper

import (
	"time"

	"soukbot-be/internal/entity"
	"soukbot-be/internal/model"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) ToEntity(c *model.Conversation) *entity.Conversation {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Conversation{
		Id:           c.Id,
		UserId:       c.UserId,
		Status:       c.Status,
		MessageCount: c.MessageCount,
		StartedAt:    c.StartedAt,
		EndedAt:      c.EndedAt,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *ConversationMapper) ToModel(c *entity.Conversation) *model.Conversation {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Conversation{
		Id:           c.Id,
		UserId:       c.UserId,
		Status:       c.Status,
		MessageCount: c.MessageCount,
		StartedAt:    c.StartedAt,
		EndedAt:      c.EndedAt,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}
