package model

import (
	"time"

	"github.com/google/uuid"
)

type Agent struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Personality   string    `gorm:"type:text;not null"`
	FeedbackStyle string    `gorm:"type:text;not null"`
	SystemPrompt  string    `gorm:"type:text;not null"`
	IsActive      bool      `gorm:"not null;default:true"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Agent) TableName() string {
	return "agents"
}
