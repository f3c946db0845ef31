package mapper

import (
	"ai-chatapp-be/internal/entity"
	"ai-chatapp-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ChatMessageToEntity(c *model.ChatMessage) *entity.ChatMessage {
	if c == nil {
		return nil
	}

	return &entity.ChatMessage{
		Id:          c.Id,
		UserId:      c.UserId,
		AgentId:     c.AgentId,
		Message:     c.Message,
		Response:    c.Response,
		ContextUsed: c.ContextUsed,
		CreatedAt:   c.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessageToModel(c *entity.ChatMessage) *model.ChatMessage {
	if c == nil {
		return nil
	}

	return &model.ChatMessage{
		Id:          c.Id,
		UserId:      c.UserId,
		AgentId:     c.AgentId,
		Message:     c.Message,
		Response:    c.Response,
		ContextUsed: c.ContextUsed,
		CreatedAt:   c.CreatedAt,
	}
}
