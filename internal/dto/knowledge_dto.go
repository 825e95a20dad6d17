package dto

import "github.com/google/uuid"

type CreateKnowledgeRequest struct {
	Title    string   `json:"title" validate:"required"`
	Content  string   `json:"content" validate:"required"`
	Category string   `json:"category" validate:"required"`
	Keywords []string `json:"keywords"`
}

type KnowledgeDTO struct {
	Id       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Category string    `json:"category"`
	Keywords []string  `json:"keywords"`
}

type SearchKnowledgeResponse struct {
	Results []KnowledgeDTO `json:"results"`
	Count   int            `json:"count"`
}
