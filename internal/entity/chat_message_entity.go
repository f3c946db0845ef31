package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	AgentId     *uuid.UUID
	Message     string
	Response    string
	ContextUsed *string
	CreatedAt   time.Time
}
