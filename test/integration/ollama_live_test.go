// Live tests against a local Ollama server. Skipped automatically when no
// server is listening; run with a model installed to exercise the full
// generation path.

package integration

import (
	"context"
	"testing"
	"time"

	"ai-chatapp-be/internal/constant"
	"ai-chatapp-be/pkg/llm"
	"ai-chatapp-be/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func liveProvider(t *testing.T) *ollama.OllamaProvider {
	t.Helper()
	provider := ollama.NewOllamaProvider(ollama.Config{
		BaseURL:     constant.OllamaDefaultBaseURL,
		Temperature: 0.1,
		MaxTokens:   64,
		Timeout:     60 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if !provider.HealthCheck(ctx) {
		t.Skip("Ollama is not running locally, skipping live test")
	}
	return provider
}

func TestLiveResolveAndChat(t *testing.T) {
	provider := liveProvider(t)
	ctx := context.Background()

	model, err := provider.ResolveModel(ctx, "")
	if err != nil {
		require.ErrorIs(t, err, llm.ErrNoModelsInstalled)
		t.Skip("No models installed, skipping generation")
	}
	assert.NotEmpty(t, model)

	answer, err := provider.Chat(ctx, []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: "Answer with a single word."},
		{Role: constant.ChatMessageRoleUser, Content: "Say hello."},
	}, llm.WithModel(model))
	require.NoError(t, err)
	assert.NotEmpty(t, answer)
}

func TestLiveVersion(t *testing.T) {
	provider := liveProvider(t)

	version, err := provider.Version(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, version)
}
