package service

import (
	"context"

	"ai-chatapp-be/internal/dto"
	"ai-chatapp-be/internal/entity"
	"ai-chatapp-be/internal/repository/specification"
	"ai-chatapp-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IAgentService interface {
	CreateAgent(ctx context.Context, req *dto.CreateAgentRequest) (*dto.AgentResponse, error)
	UpdateAgent(ctx context.Context, agentId uuid.UUID, req *dto.UpdateAgentRequest) (*dto.AgentResponse, error)
	GetAgent(ctx context.Context, agentId uuid.UUID) (*dto.AgentResponse, error)
	ListAgents(ctx context.Context, activeOnly bool) (*dto.AgentListResponse, error)
	DeactivateAgent(ctx context.Context, agentId uuid.UUID) error
}

type agentService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewAgentService(uowFactory unitofwork.RepositoryFactory) IAgentService {
	return &agentService{uowFactory: uowFactory}
}

func (s *agentService) CreateAgent(ctx context.Context, req *dto.CreateAgentRequest) (*dto.AgentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.AgentRepository().FindOne(ctx, specification.ByName{Name: req.Name})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAgentNameTaken
	}

	agent := &entity.Agent{
		Id:            uuid.New(),
		Name:          req.Name,
		Personality:   req.Personality,
		FeedbackStyle: req.FeedbackStyle,
		SystemPrompt:  req.SystemPrompt,
		IsActive:      true,
	}
	if err := uow.AgentRepository().Create(ctx, agent); err != nil {
		return nil, err
	}

	resp := toAgentResponse(agent)
	return &resp, nil
}

func (s *agentService) UpdateAgent(ctx context.Context, agentId uuid.UUID, req *dto.UpdateAgentRequest) (*dto.AgentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	agent, err := uow.AgentRepository().FindOne(ctx, specification.ByID{ID: agentId})
	if err != nil {
		return nil, err
	}
	if agent == nil {
		return nil, ErrAgentNotFound
	}

	if req.Name != nil && *req.Name != agent.Name {
		conflict, err := uow.AgentRepository().FindOne(ctx, specification.ByName{Name: *req.Name})
		if err != nil {
			return nil, err
		}
		if conflict != nil {
			return nil, ErrAgentNameTaken
		}
		agent.Name = *req.Name
	}
	if req.Personality != nil {
		agent.Personality = *req.Personality
	}
	if req.FeedbackStyle != nil {
		agent.FeedbackStyle = *req.FeedbackStyle
	}
	if req.SystemPrompt != nil {
		agent.SystemPrompt = *req.SystemPrompt
	}
	if req.IsActive != nil {
		agent.IsActive = *req.IsActive
	}

	if err := uow.AgentRepository().Update(ctx, agent); err != nil {
		return nil, err
	}

	resp := toAgentResponse(agent)
	return &resp, nil
}

func (s *agentService) GetAgent(ctx context.Context, agentId uuid.UUID) (*dto.AgentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	agent, err := uow.AgentRepository().FindOne(ctx, specification.ByID{ID: agentId})
	if err != nil {
		return nil, err
	}
	if agent == nil {
		return nil, ErrAgentNotFound
	}

	resp := toAgentResponse(agent)
	return &resp, nil
}

func (s *agentService) ListAgents(ctx context.Context, activeOnly bool) (*dto.AgentListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{specification.OrderByCreatedAt{Descending: false}}
	if activeOnly {
		specs = append(specs, specification.ActiveOnly{})
	}

	agents, err := uow.AgentRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.AgentResponse, len(agents))
	for i, a := range agents {
		items[i] = toAgentResponse(a)
	}
	return &dto.AgentListResponse{
		Agents:     items,
		TotalCount: int64(len(items)),
	}, nil
}

// DeactivateAgent soft-disables an agent. Messages referencing it are kept.
func (s *agentService) DeactivateAgent(ctx context.Context, agentId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	agent, err := uow.AgentRepository().FindOne(ctx, specification.ByID{ID: agentId})
	if err != nil {
		return err
	}
	if agent == nil {
		return ErrAgentNotFound
	}

	agent.IsActive = false
	return uow.AgentRepository().Update(ctx, agent)
}

func toAgentResponse(a *entity.Agent) dto.AgentResponse {
	return dto.AgentResponse{
		Id:            a.Id,
		Name:          a.Name,
		Personality:   a.Personality,
		FeedbackStyle: a.FeedbackStyle,
		SystemPrompt:  a.SystemPrompt,
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt,
	}
}
