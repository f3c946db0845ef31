package entity

import (
	"time"

	"github.com/google/uuid"
)

// Agent is a named persona injected into the system prompt: personality and
// feedback style shape the tone, SystemPrompt carries its base instructions.
type Agent struct {
	Id            uuid.UUID
	Name          string
	Personality   string
	FeedbackStyle string
	SystemPrompt  string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
