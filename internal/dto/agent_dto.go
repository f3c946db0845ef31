package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateAgentRequest struct {
	Name          string `json:"name" validate:"required"`
	Personality   string `json:"personality" validate:"required"`
	FeedbackStyle string `json:"feedback_style" validate:"required"`
	SystemPrompt  string `json:"system_prompt" validate:"required"`
}

type UpdateAgentRequest struct {
	Name          *string `json:"name,omitempty"`
	Personality   *string `json:"personality,omitempty"`
	FeedbackStyle *string `json:"feedback_style,omitempty"`
	SystemPrompt  *string `json:"system_prompt,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

type AgentResponse struct {
	Id            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Personality   string    `json:"personality"`
	FeedbackStyle string    `json:"feedback_style"`
	SystemPrompt  string    `json:"system_prompt"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

type AgentListResponse struct {
	Agents     []AgentResponse `json:"agents"`
	TotalCount int64           `json:"total_count"`
}
