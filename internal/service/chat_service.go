package service

import (
	"context"
	"strings"

	"ai-chatapp-be/internal/cache"
	"ai-chatapp-be/internal/constant"
	"ai-chatapp-be/internal/dto"
	"ai-chatapp-be/internal/entity"
	"ai-chatapp-be/internal/pkg/logger"
	"ai-chatapp-be/internal/repository/specification"
	"ai-chatapp-be/internal/repository/unitofwork"
	"ai-chatapp-be/pkg/dataset"
	"ai-chatapp-be/pkg/llm"
	"ai-chatapp-be/pkg/prompt"

	"github.com/google/uuid"
)

// maxHistoryMessages bounds how many prior turns are replayed to the model.
const maxHistoryMessages = 10

type IChatService interface {
	SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest) (*dto.ChatMessageResponse, error)
	GetMessages(ctx context.Context, userId uuid.UUID, skip, limit int) (*dto.ChatMessageListResponse, error)
	DeleteMessage(ctx context.Context, userId, messageId uuid.UUID) error
	DeleteAllMessages(ctx context.Context, userId uuid.UUID) error
	GetStatistics(ctx context.Context, userId uuid.UUID) (*dto.ChatStatisticsResponse, error)
}

// chatService orchestrates one chat turn: dataset context lookup, prompt
// composition, model resolution, generation, persistence. Dataset and cache
// failures degrade silently; backend reachability and model availability
// surface as distinct conditions so the controller can refuse the request.
type chatService struct {
	uowFactory  unitofwork.RepositoryFactory
	llmProvider llm.LLMProvider
	index       *dataset.Index
	composer    *prompt.Composer
	msgCache    *cache.MessageCache
	log         logger.ILogger

	maxResults int
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	index *dataset.Index,
	composer *prompt.Composer,
	msgCache *cache.MessageCache,
	log logger.ILogger,
	maxResults int,
) IChatService {
	if maxResults <= 0 {
		maxResults = dataset.DefaultMaxResults
	}
	return &chatService{
		uowFactory:  uowFactory,
		llmProvider: llmProvider,
		index:       index,
		composer:    composer,
		msgCache:    msgCache,
		log:         log,
		maxResults:  maxResults,
	}
}

func (s *chatService) SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest) (*dto.ChatMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	var agent *entity.Agent
	var contextParts []string
	if req.AgentId != nil {
		agent, err = uow.AgentRepository().FindOne(ctx, specification.ByID{ID: *req.AgentId})
		if err != nil {
			return nil, err
		}
		if agent == nil {
			return nil, ErrAgentNotFound
		}
		contextParts = append(contextParts,
			"Agent: "+agent.Name+" | Personality: "+agent.Personality+" | Style: "+agent.FeedbackStyle)
	}

	// Dataset context is best-effort: an unavailable index just yields an
	// empty block.
	rows := s.index.FindRelevant(req.Message, s.maxResults)
	datasetBlock := s.composer.DatasetBlock(rows)
	if datasetBlock != "" {
		contextParts = append(contextParts, "Dataset: "+prompt.Preview(datasetBlock))
	}

	var answer string
	if req.Response != nil && *req.Response != "" {
		answer = *req.Response
	} else {
		answer, err = s.generate(ctx, userId, req.Message, agent, datasetBlock)
		if err != nil {
			return nil, err
		}
	}

	var contextUsed *string
	if len(contextParts) > 0 {
		joined := strings.Join(contextParts, "\n")
		contextUsed = &joined
	}

	message := &entity.ChatMessage{
		Id:          uuid.New(),
		UserId:      userId,
		AgentId:     req.AgentId,
		Message:     req.Message,
		Response:    answer,
		ContextUsed: contextUsed,
	}
	if err := uow.ChatMessageRepository().Create(ctx, message); err != nil {
		return nil, err
	}

	s.msgCache.CacheMessage(ctx, userId, message)

	resp := toChatMessageResponse(message)
	return &resp, nil
}

// generate runs the resilient generation chain. Reachability and model
// availability failures propagate; a failure of the chat call itself is
// absorbed into the fixed apology answer because the chat surface must
// always return something.
func (s *chatService) generate(ctx context.Context, userId uuid.UUID, message string, agent *entity.Agent, datasetBlock string) (string, error) {
	if !s.llmProvider.HealthCheck(ctx) {
		return "", llm.ErrBackendUnreachable
	}

	model, err := s.llmProvider.ResolveModel(ctx, "")
	if err != nil {
		return "", err
	}

	systemPrompt := s.composer.Compose(agent, datasetBlock)

	messages := make([]llm.Message, 0, 2+2*maxHistoryMessages)
	messages = append(messages, llm.Message{Role: constant.ChatMessageRoleSystem, Content: systemPrompt})
	messages = append(messages, s.loadHistory(ctx, userId)...)
	messages = append(messages, llm.Message{Role: constant.ChatMessageRoleUser, Content: message})

	answer, err := s.llmProvider.Chat(ctx, messages, llm.WithModel(model))
	if err != nil {
		s.log.Error("chat", "Generation failed, returning fallback answer", map[string]interface{}{
			"user_id": userId.String(),
			"model":   model,
			"error":   err.Error(),
		})
		return constant.OllamaGeneralErrorMessage, nil
	}

	s.log.Info("chat", "Response generated", map[string]interface{}{
		"user_id": userId.String(),
		"model":   model,
	})
	return answer, nil
}

// loadHistory fetches recent turns cache-first, falling back to the
// relational store on a miss, and replays them oldest-first between the
// system and current user message. Order is preserved as stored, never
// deduplicated.
func (s *chatService) loadHistory(ctx context.Context, userId uuid.UUID) []llm.Message {
	recent, ok := s.msgCache.RecentMessages(ctx, userId, maxHistoryMessages)
	if !ok {
		var err error
		recent, err = s.uowFactory.NewUnitOfWork(ctx).ChatMessageRepository().FindAll(ctx,
			specification.ByUserID{UserID: userId},
			specification.OrderByCreatedAt{Descending: true},
			specification.Paginate{Skip: 0, Limit: maxHistoryMessages},
		)
		if err != nil {
			return nil
		}
	}

	// Stored newest-first; the model wants chronological order.
	history := make([]llm.Message, 0, 2*len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		msg := recent[i]
		history = append(history,
			llm.Message{Role: constant.ChatMessageRoleUser, Content: msg.Message},
			llm.Message{Role: constant.ChatMessageRoleAssistant, Content: msg.Response},
		)
	}
	return history
}

func (s *chatService) GetMessages(ctx context.Context, userId uuid.UUID, skip, limit int) (*dto.ChatMessageListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderByCreatedAt{Descending: true},
		specification.Paginate{Skip: skip, Limit: limit},
	)
	if err != nil {
		return nil, err
	}

	total, err := uow.ChatMessageRepository().Count(ctx, specification.ByUserID{UserID: userId})
	if err != nil {
		return nil, err
	}

	items := make([]dto.ChatMessageResponse, len(messages))
	for i, m := range messages {
		items[i] = toChatMessageResponse(m)
	}
	return &dto.ChatMessageListResponse{
		Messages:   items,
		TotalCount: total,
		Skip:       skip,
		Limit:      limit,
	}, nil
}

func (s *chatService) DeleteMessage(ctx context.Context, userId, messageId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	deleted, err := uow.ChatMessageRepository().Delete(ctx, messageId, userId)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrMessageNotFound
	}
	return nil
}

func (s *chatService) DeleteAllMessages(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	count, err := uow.ChatMessageRepository().DeleteAllByUserId(ctx, userId)
	if err != nil {
		return err
	}
	s.msgCache.Invalidate(ctx, userId)
	s.log.Info("chat", "Deleted all messages", map[string]interface{}{
		"user_id": userId.String(),
		"count":   count,
	})
	return nil
}

func (s *chatService) GetStatistics(ctx context.Context, userId uuid.UUID) (*dto.ChatStatisticsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	repo := uow.ChatMessageRepository()
	total, err := repo.Count(ctx, specification.ByUserID{UserID: userId})
	if err != nil {
		return nil, err
	}

	stats := &dto.ChatStatisticsResponse{TotalMessages: total}
	if total == 0 {
		return stats, nil
	}

	first, err := repo.FindOne(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderByCreatedAt{Descending: false},
	)
	if err != nil {
		return nil, err
	}
	last, err := repo.FindOne(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderByCreatedAt{Descending: true},
	)
	if err != nil {
		return nil, err
	}

	if first != nil {
		stats.FirstMessageDate = &first.CreatedAt
	}
	if last != nil {
		stats.LastMessageDate = &last.CreatedAt
	}
	return stats, nil
}

func toChatMessageResponse(m *entity.ChatMessage) dto.ChatMessageResponse {
	return dto.ChatMessageResponse{
		Id:          m.Id,
		UserId:      m.UserId,
		AgentId:     m.AgentId,
		Message:     m.Message,
		Response:    m.Response,
		ContextUsed: m.ContextUsed,
		CreatedAt:   m.CreatedAt,
	}
}
