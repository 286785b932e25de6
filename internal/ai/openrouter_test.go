package ai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dnd-server/internal/ai"
)

func TestOpenRouterGenerate(t *testing.T) {
	t.Run("reinforces markup and post-processes reply", func(t *testing.T) {
		t.Setenv("OPENROUTER_MODEL", "")

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			assert.NotEmpty(t, r.Header.Get("HTTP-Referer"))
			assert.NotEmpty(t, r.Header.Get("X-Title"))

			var body struct {
				Model    string `json:"model"`
				Messages []struct {
					Role    string `json:"role"`
					Content string `json:"content"`
				} `json:"messages"`
				Temperature float64 `json:"temperature"`
				MaxTokens   int     `json:"max_tokens"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "anthropic/claude-2", body.Model)
			assert.InDelta(t, 0.7, body.Temperature, 0.001)
			assert.Equal(t, 800, body.MaxTokens)
			// К системному промпту добавлено усиление разметки
			require.NotEmpty(t, body.Messages)
			assert.Contains(t, body.Messages[0].Content, "You are the GM")
			assert.Contains(t, body.Messages[0].Content, "FORMATTING REMINDER")

			w.Header().Set("Content-Type", "application/json")
			require.NoError(t, json.NewEncoder(w).Encode(chatCompletionResponse(
				"Captain Helena waits at The Misty Tavern. Roll d20+2.",
			)))
		}))
		defer srv.Close()

		provider, err := ai.NewOpenRouter("test-key", ai.Options{BaseURL: srv.URL})
		require.NoError(t, err)

		got := provider.Generate(context.Background(), ai.GenerateRequest{
			Message:      "I look around",
			SystemPrompt: "You are the GM",
		})

		// Ответ прогнан через пост-обработку разметки
		assert.Contains(t, got, "@Captain Helena@")
		assert.Contains(t, got, "#The Misty Tavern#")
		assert.Contains(t, got, "`[d20+2]`")
	})

	t.Run("falls back on server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "upstream exploded", http.StatusBadGateway)
		}))
		defer srv.Close()

		provider, err := ai.NewOpenRouter("test-key", ai.Options{BaseURL: srv.URL})
		require.NoError(t, err)

		got := provider.Generate(context.Background(), ai.GenerateRequest{Message: "hi", SystemPrompt: "gm"})
		assert.Equal(t, ai.Fallback, got)
	})

	t.Run("falls back on malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json at all"))
		}))
		defer srv.Close()

		provider, err := ai.NewOpenRouter("test-key", ai.Options{BaseURL: srv.URL})
		require.NoError(t, err)

		got := provider.Generate(context.Background(), ai.GenerateRequest{Message: "hi", SystemPrompt: "gm"})
		assert.Equal(t, ai.Fallback, got)
	})
}

func TestNewOpenRouterConfig(t *testing.T) {
	t.Run("requires api key", func(t *testing.T) {
		t.Setenv("OPENROUTER_API_KEY", "")

		_, err := ai.NewOpenRouter("", ai.Options{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "OPENROUTER_API_KEY not found in environment variables")
	})

	t.Run("model from environment", func(t *testing.T) {
		t.Setenv("OPENROUTER_MODEL", "mistralai/mixtral-8x7b")

		provider, err := ai.NewOpenRouter("test-key", ai.Options{})
		require.NoError(t, err)
		assert.Equal(t, "mistralai/mixtral-8x7b", provider.Model())
	})

	t.Run("explicit model wins over environment", func(t *testing.T) {
		t.Setenv("OPENROUTER_MODEL", "mistralai/mixtral-8x7b")

		provider, err := ai.NewOpenRouter("test-key", ai.Options{Model: "meta-llama/llama-3-70b"})
		require.NoError(t, err)
		assert.Equal(t, "meta-llama/llama-3-70b", provider.Model())
	})
}
