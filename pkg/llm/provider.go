package llm

import (
	"context"
	"errors"
	"time"
)

// Sentinel conditions surfaced to the orchestration layer. Both are distinct
// from a generation failure: the caller may refuse the request instead of
// returning a degraded answer.
var (
	ErrBackendUnreachable = errors.New("llm backend unreachable")
	ErrNoModelsInstalled  = errors.New("no models installed on llm backend")
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// ModelInfo describes an installed model as reported by the backend
type ModelInfo struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modified_at"`
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
// Anything not set falls back to the provider's configured defaults.
type Option func(*Options)

type Options struct {
	Temperature   float64
	TopP          float64
	TopK          int
	RepeatPenalty float64
	MaxTokens     int
	Model         string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithTopP(topP float64) Option {
	return func(o *Options) {
		o.TopP = topP
	}
}

func WithTopK(topK int) Option {
	return func(o *Options) {
		o.TopK = topK
	}
}

func WithRepeatPenalty(penalty float64) Option {
	return func(o *Options) {
		o.RepeatPenalty = penalty
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(o *Options) {
		o.MaxTokens = maxTokens
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// HealthCheck probes the backend liveness endpoint. Connectivity
	// failures map to false, never an error.
	HealthCheck(ctx context.Context) bool

	// ListModels returns the installed models. On failure it returns an
	// empty list; callers must treat empty as "no models available".
	ListModels(ctx context.Context) []ModelInfo

	// ResolveModel picks a concrete installed model: the requested one if
	// installed, else the configured default, else the first installed.
	// An empty install list yields ErrNoModelsInstalled.
	ResolveModel(ctx context.Context, requested string) (string, error)

	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
