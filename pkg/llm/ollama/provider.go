package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-chatapp-be/internal/constant"
	"ai-chatapp-be/pkg/llm"
)

// Config carries the generation defaults applied when a call does not
// override them.
type Config struct {
	BaseURL       string
	DefaultModel  string
	Temperature   float64
	TopP          float64
	TopK          int
	RepeatPenalty float64
	MaxTokens     int
	Timeout       time.Duration
}

type OllamaProvider struct {
	cfg    Config
	client *http.Client
}

// Ensure OllamaProvider implements LLMProvider
var _ llm.LLMProvider = &OllamaProvider{}

func NewOllamaProvider(cfg Config) *OllamaProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = constant.OllamaDefaultBaseURL
	}
	if cfg.Timeout == 0 {
		// Ollama can be slow on first request due to model loading
		cfg.Timeout = 120 * time.Second
	}
	return &OllamaProvider{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  *ollamaOptions  `json:"options,omitempty"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature   float64 `json:"temperature,omitempty"`
	TopP          float64 `json:"top_p,omitempty"`
	TopK          int     `json:"top_k,omitempty"`
	RepeatPenalty float64 `json:"repeat_penalty,omitempty"`
	NumPredict    int     `json:"num_predict,omitempty"`
}

type ollamaChatResponse struct {
	Model   string        `json:"model"`
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
}

type ollamaTagsResponse struct {
	Models []llm.ModelInfo `json:"models"`
}

type ollamaVersionResponse struct {
	Version string `json:"version"`
}

// --- Interface Implementation ---

func (o *OllamaProvider) HealthCheck(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, "GET", o.cfg.BaseURL+constant.OllamaTagsEndpoint, nil)
	if err != nil {
		return false
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}

func (o *OllamaProvider) ListModels(ctx context.Context) []llm.ModelInfo {
	var tags ollamaTagsResponse
	if err := o.getJSON(ctx, constant.OllamaTagsEndpoint, &tags); err != nil {
		return []llm.ModelInfo{}
	}
	if tags.Models == nil {
		return []llm.ModelInfo{}
	}
	return tags.Models
}

func (o *OllamaProvider) ResolveModel(ctx context.Context, requested string) (string, error) {
	models := o.ListModels(ctx)
	if len(models) == 0 {
		return "", llm.ErrNoModelsInstalled
	}

	installed := make(map[string]bool, len(models))
	for _, m := range models {
		installed[m.Name] = true
	}

	if requested != "" && installed[requested] {
		return requested, nil
	}
	if installed[o.cfg.DefaultModel] {
		return o.cfg.DefaultModel, nil
	}
	return models[0].Name, nil
}

func (o *OllamaProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	// 1. Seed options from the configured defaults; per-call overrides win
	options := &llm.Options{
		Temperature:   o.cfg.Temperature,
		TopP:          o.cfg.TopP,
		TopK:          o.cfg.TopK,
		RepeatPenalty: o.cfg.RepeatPenalty,
		MaxTokens:     o.cfg.MaxTokens,
	}
	for _, opt := range opts {
		opt(options)
	}

	// 2. Map generic messages to Ollama messages
	ollamaMessages := make([]ollamaMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = constant.ChatMessageRoleAssistant
		}
		ollamaMessages[i] = ollamaMessage{
			Role:    role,
			Content: msg.Content,
		}
	}

	// 3. Prepare Payload
	model := o.cfg.DefaultModel
	if options.Model != "" {
		model = options.Model
	}

	reqPayload := ollamaChatRequest{
		Model:    model,
		Messages: ollamaMessages,
		Stream:   false,
		Options: &ollamaOptions{
			Temperature:   options.Temperature,
			TopP:          options.TopP,
			TopK:          options.TopK,
			RepeatPenalty: options.RepeatPenalty,
			NumPredict:    options.MaxTokens,
		},
	}

	var ollamaResp ollamaChatResponse
	if err := o.postJSON(ctx, constant.OllamaChatEndpoint, reqPayload, &ollamaResp); err != nil {
		return "", err
	}

	return ollamaResp.Message.Content, nil
}

func (o *OllamaProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	// Reuse Chat for simplicity as most new LLMs are chat-optimized
	return o.Chat(ctx, []llm.Message{{Role: constant.ChatMessageRoleUser, Content: prompt}}, opts...)
}

// --- Model management ---

func (o *OllamaProvider) PullModel(ctx context.Context, name string) error {
	payload := map[string]any{"name": name, "stream": false}
	return o.postJSON(ctx, constant.OllamaPullEndpoint, payload, &map[string]any{})
}

func (o *OllamaProvider) DeleteModel(ctx context.Context, name string) error {
	payload := map[string]any{"name": name}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "DELETE", o.cfg.BaseURL+constant.OllamaDeleteEndpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("ollama error: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

func (o *OllamaProvider) ShowModel(ctx context.Context, name string) (map[string]any, error) {
	payload := map[string]any{"name": name}
	detail := make(map[string]any)
	if err := o.postJSON(ctx, constant.OllamaShowEndpoint, payload, &detail); err != nil {
		return nil, err
	}
	return detail, nil
}

func (o *OllamaProvider) Version(ctx context.Context) (string, error) {
	var v ollamaVersionResponse
	if err := o.getJSON(ctx, constant.OllamaVersionEndpoint, &v); err != nil {
		return "", err
	}
	return v.Version, nil
}

// BaseURL exposes the configured server address for health reporting.
func (o *OllamaProvider) BaseURL() string {
	return o.cfg.BaseURL
}

// --- HTTP helpers ---

func (o *OllamaProvider) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", o.cfg.BaseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama error: status %d, body: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

func (o *OllamaProvider) postJSON(ctx context.Context, endpoint string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.cfg.BaseURL+endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama error: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
