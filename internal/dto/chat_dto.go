package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	AgentId *uuid.UUID `json:"agent_id,omitempty"`
	Message string     `json:"message" validate:"required"`
	// Response, when supplied by the client, is stored as-is and generation
	// is skipped.
	Response *string `json:"response,omitempty"`
}

type ChatMessageResponse struct {
	Id          uuid.UUID  `json:"id"`
	UserId      uuid.UUID  `json:"user_id"`
	AgentId     *uuid.UUID `json:"agent_id,omitempty"`
	Message     string     `json:"message"`
	Response    string     `json:"response"`
	ContextUsed *string    `json:"context_used,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type ChatMessageListResponse struct {
	Messages   []ChatMessageResponse `json:"messages"`
	TotalCount int64                 `json:"total_count"`
	Skip       int                   `json:"skip"`
	Limit      int                   `json:"limit"`
}

type ChatStatisticsResponse struct {
	TotalMessages    int64      `json:"total_messages"`
	FirstMessageDate *time.Time `json:"first_message_date,omitempty"`
	LastMessageDate  *time.Time `json:"last_message_date,omitempty"`
}
