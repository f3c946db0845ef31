package mapper

import (
	"time"

	"ai-chatapp-be/internal/entity"
	"ai-chatapp-be/internal/model"
)

type AgentMapper struct{}

func NewAgentMapper() *AgentMapper {
	return &AgentMapper{}
}

func (m *AgentMapper) ToEntity(a *model.Agent) *entity.Agent {
	if a == nil {
		return nil
	}

	var updatedAt *time.Time
	if !a.UpdatedAt.IsZero() {
		t := a.UpdatedAt
		updatedAt = &t
	}

	return &entity.Agent{
		Id:            a.Id,
		Name:          a.Name,
		Personality:   a.Personality,
		FeedbackStyle: a.FeedbackStyle,
		SystemPrompt:  a.SystemPrompt,
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *AgentMapper) ToModel(a *entity.Agent) *model.Agent {
	if a == nil {
		return nil
	}

	var updatedAt time.Time
	if a.UpdatedAt != nil {
		updatedAt = *a.UpdatedAt
	}

	return &model.Agent{
		Id:            a.Id,
		Name:          a.Name,
		Personality:   a.Personality,
		FeedbackStyle: a.FeedbackStyle,
		SystemPrompt:  a.SystemPrompt,
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}
