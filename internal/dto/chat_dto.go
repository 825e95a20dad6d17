package dto

import (
	"time"

	"github.com/google/uuid"

	"soukbot-be/pkg/commerce"
)

type StartConversationRequest struct {
	UserId string `json:"user_id" validate:"required"`
}

type StartConversationResponse struct {
	ConversationId uuid.UUID `json:"conversation_id"`
	InitialMessage string    `json:"initial_message"`
	QuickReplies   []string  `json:"quick_replies,omitempty"`
}

type SendMessageRequest struct {
	UserId  string `json:"user_id" validate:"required"`
	Content string `json:"content" validate:"required,max=2000"`
}

type ContextValidationDTO struct {
	IsInContext bool    `json:"is_in_context"`
	Confidence  float64 `json:"confidence"`
}

type SendMessageResponse struct {
	ConversationId    uuid.UUID                  `json:"conversation_id"`
	Reply             string                     `json:"reply"`
	QuickReplies      []string                   `json:"quick_replies,omitempty"`
	IsOutOfContext    bool                       `json:"is_out_of_context"`
	ContextValidation *ContextValidationDTO      `json:"context_validation,omitempty"`
	Partners          []commerce.PartnerDisplay  `json:"partners,omitempty"`
	Suggestions       []commerce.Suggestion      `json:"suggestions,omitempty"`
}

type ImageUploadRequest struct {
	UserId string `json:"user_id" validate:"required"`
}

type ImageUploadResponse struct {
	ConversationId uuid.UUID `json:"conversation_id"`
	Reply          string    `json:"reply"`
	ProductType    string    `json:"product_type"`
	Confidence     float64   `json:"confidence"`
}

type EndConversationResponse struct {
	ConversationId uuid.UUID `json:"conversation_id"`
	Status         string    `json:"status"`
}

type MessageDTO struct {
	Id        uuid.UUID `json:"id"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ConversationHistoryResponse struct {
	ConversationId uuid.UUID    `json:"conversation_id"`
	UserId         string       `json:"user_id"`
	Status         string       `json:"status"`
	StartedAt      time.Time    `json:"started_at"`
	Messages       []MessageDTO `json:"messages"`
}

type ActiveConversationDTO struct {
	ConversationId uuid.UUID `json:"conversation_id"`
	UserId         string    `json:"user_id"`
	MessageCount   int       `json:"message_count"`
	StartedAt      time.Time `json:"started_at"`
}
