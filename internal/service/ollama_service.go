package service

import (
	"context"

	"ai-chatapp-be/internal/dto"
	"ai-chatapp-be/pkg/llm"
	"ai-chatapp-be/pkg/llm/ollama"
)

type IOllamaService interface {
	Health(ctx context.Context) *dto.OllamaHealthResponse
	ListModels(ctx context.Context) ([]dto.OllamaModelResponse, error)
	ShowModel(ctx context.Context, name string) (map[string]any, error)
	PullModel(ctx context.Context, name string) error
	DeleteModel(ctx context.Context, name string) error
}

// ollamaService exposes backend management over the concrete provider, which
// carries the pull/delete/show surface beyond the generation interface.
type ollamaService struct {
	provider     *ollama.OllamaProvider
	defaultModel string
}

func NewOllamaService(provider *ollama.OllamaProvider, defaultModel string) IOllamaService {
	return &ollamaService{provider: provider, defaultModel: defaultModel}
}

func (s *ollamaService) Health(ctx context.Context) *dto.OllamaHealthResponse {
	resp := &dto.OllamaHealthResponse{
		Status:  "unavailable",
		BaseURL: s.provider.BaseURL(),
	}
	if !s.provider.HealthCheck(ctx) {
		return resp
	}
	resp.Status = "healthy"
	if version, err := s.provider.Version(ctx); err == nil {
		resp.Version = version
	}
	return resp
}

func (s *ollamaService) ListModels(ctx context.Context) ([]dto.OllamaModelResponse, error) {
	if !s.provider.HealthCheck(ctx) {
		return nil, llm.ErrBackendUnreachable
	}

	models := s.provider.ListModels(ctx)
	items := make([]dto.OllamaModelResponse, len(models))
	for i, m := range models {
		items[i] = dto.OllamaModelResponse{
			Name:       m.Name,
			Size:       m.Size,
			ModifiedAt: m.ModifiedAt,
			Installed:  true,
			Default:    m.Name == s.defaultModel,
		}
	}
	return items, nil
}

func (s *ollamaService) ShowModel(ctx context.Context, name string) (map[string]any, error) {
	return s.provider.ShowModel(ctx, name)
}

func (s *ollamaService) PullModel(ctx context.Context, name string) error {
	if !s.provider.HealthCheck(ctx) {
		return llm.ErrBackendUnreachable
	}
	return s.provider.PullModel(ctx, name)
}

func (s *ollamaService) DeleteModel(ctx context.Context, name string) error {
	if !s.provider.HealthCheck(ctx) {
		return llm.ErrBackendUnreachable
	}
	return s.provider.DeleteModel(ctx, name)
}
