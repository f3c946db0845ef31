package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID  `gorm:"type:uuid;not null;index"`
	AgentId     *uuid.UUID `gorm:"type:uuid;index"`
	Message     string     `gorm:"type:text;not null"`
	Response    string     `gorm:"type:text;not null"`
	ContextUsed *string    `gorm:"type:text"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
