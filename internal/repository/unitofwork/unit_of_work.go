package unitofwork

import (
	"context"

	"ai-chatapp-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	AgentRepository() contract.AgentRepository
	ChatMessageRepository() contract.ChatMessageRepository
}
