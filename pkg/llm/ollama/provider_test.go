package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-chatapp-be/pkg/llm"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *OllamaProvider) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	provider := NewOllamaProvider(Config{
		BaseURL:      srv.URL,
		DefaultModel: "z",
	})
	return srv, provider
}

func tagsHandler(names ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		models := make([]map[string]any, len(names))
		for i, n := range names {
			models[i] = map[string]any{"name": n}
		}
		json.NewEncoder(w).Encode(map[string]any{"models": models})
	}
}

func TestHealthCheck(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		_, provider := newTestServer(t, tagsHandler("a"))
		if !provider.HealthCheck(context.Background()) {
			t.Error("HealthCheck = false, want true")
		}
	})

	t.Run("server error", func(t *testing.T) {
		_, provider := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		if provider.HealthCheck(context.Background()) {
			t.Error("HealthCheck = true, want false")
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		srv, provider := newTestServer(t, tagsHandler())
		srv.Close()
		if provider.HealthCheck(context.Background()) {
			t.Error("HealthCheck = true, want false")
		}
	})
}

func TestListModels(t *testing.T) {
	t.Run("returns installed models", func(t *testing.T) {
		_, provider := newTestServer(t, tagsHandler("a", "b"))
		models := provider.ListModels(context.Background())
		if len(models) != 2 || models[0].Name != "a" || models[1].Name != "b" {
			t.Errorf("models = %+v", models)
		}
	})

	t.Run("empty on failure", func(t *testing.T) {
		srv, provider := newTestServer(t, tagsHandler())
		srv.Close()
		models := provider.ListModels(context.Background())
		if models == nil || len(models) != 0 {
			t.Errorf("models = %v, want empty non-nil slice", models)
		}
	})
}

func TestResolveModel(t *testing.T) {
	tests := []struct {
		name      string
		installed []string
		requested string
		want      string
		wantErr   error
	}{
		{
			name:      "requested model installed",
			installed: []string{"a", "b"},
			requested: "b",
			want:      "b",
		},
		{
			name:      "requested missing falls to first since default absent",
			installed: []string{"a", "b"},
			requested: "nope",
			want:      "a",
		},
		{
			name:      "no request and default absent picks first",
			installed: []string{"a", "b"},
			want:      "a",
		},
		{
			name:      "default preferred when installed",
			installed: []string{"a", "z"},
			want:      "z",
		},
		{
			name:    "nothing installed",
			wantErr: llm.ErrNoModelsInstalled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, provider := newTestServer(t, tagsHandler(tt.installed...))
			got, err := provider.ResolveModel(context.Background(), tt.requested)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveModel = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChat(t *testing.T) {
	var captured struct {
		Model    string `json:"model"`
		Stream   bool   `json:"stream"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
		Options struct {
			Temperature   float64 `json:"temperature"`
			TopP          float64 `json:"top_p"`
			TopK          int     `json:"top_k"`
			RepeatPenalty float64 `json:"repeat_penalty"`
			NumPredict    int     `json:"num_predict"`
		} `json:"options"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"model":   captured.Model,
			"message": map[string]string{"role": "assistant", "content": "hello there"},
			"done":    true,
		})
	}))
	t.Cleanup(srv.Close)

	provider := NewOllamaProvider(Config{
		BaseURL:       srv.URL,
		DefaultModel:  "llama3.2:3b",
		Temperature:   0.7,
		TopP:          0.9,
		TopK:          40,
		RepeatPenalty: 1.1,
		MaxTokens:     2048,
	})

	answer, err := provider.Chat(context.Background(), []llm.Message{
		{Role: "system", Content: "be brief"},
		{Role: "model", Content: "earlier answer"},
		{Role: "user", Content: "hi"},
	}, llm.WithTemperature(0.2))
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if answer != "hello there" {
		t.Errorf("answer = %q", answer)
	}

	if captured.Model != "llama3.2:3b" {
		t.Errorf("model = %q", captured.Model)
	}
	if captured.Stream {
		t.Error("stream must be disabled")
	}
	if len(captured.Messages) != 3 {
		t.Fatalf("message count = %d", len(captured.Messages))
	}
	// Legacy "model" role normalizes to assistant
	if captured.Messages[1].Role != "assistant" {
		t.Errorf("role = %q, want assistant", captured.Messages[1].Role)
	}
	if captured.Options.Temperature != 0.2 {
		t.Errorf("temperature = %v, want per-call override", captured.Options.Temperature)
	}
	if captured.Options.TopP != 0.9 || captured.Options.TopK != 40 ||
		captured.Options.RepeatPenalty != 1.1 || captured.Options.NumPredict != 2048 {
		t.Errorf("options = %+v, want configured defaults", captured.Options)
	}
}

func TestChatTransportError(t *testing.T) {
	srv, provider := newTestServer(t, tagsHandler())
	srv.Close()

	_, err := provider.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
	if err == nil {
		t.Fatal("expected error from closed server")
	}
}

func TestVersion(t *testing.T) {
	_, provider := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"version": "0.5.7"})
	})

	v, err := provider.Version(context.Background())
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if v != "0.5.7" {
		t.Errorf("version = %q", v)
	}
}
