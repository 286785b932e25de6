package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

const (
	deepSeekBaseURL      = "https://api.deepseek.com/v1"
	deepSeekDefaultModel = "deepseek-chat"
	deepSeekKeyEnv       = "DEEPSEEK_API_KEY"
)

// DeepSeek — основной провайдер, работающий с chat-completion API DeepSeek
// через клиент go-openai (API совместим с OpenAI).
type DeepSeek struct {
	client *openai.Client
	model  string
	logger zerolog.Logger
}

// NewDeepSeek создает провайдер DeepSeek. Ключ берется из apiKey или из
// переменной окружения DEEPSEEK_API_KEY; его отсутствие — фатальная ошибка
// конфигурации, возвращаемая сразу, а не при первом вызове.
func NewDeepSeek(apiKey string, opts Options) (*DeepSeek, error) {
	if apiKey == "" {
		apiKey = os.Getenv(deepSeekKeyEnv)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%s not found in environment variables", deepSeekKeyEnv)
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = deepSeekBaseURL
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: requestTimeout}

	model := deepSeekDefaultModel
	if opts.Model != "" {
		model = opts.Model
	}

	return &DeepSeek{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: log.With().Str("component", "ai.deepseek").Logger(),
	}, nil
}

// Generate выполняет один запрос к API и возвращает текст первого choice.
// Любая ошибка логируется и превращается в Fallback.
func (d *DeepSeek) Generate(ctx context.Context, req GenerateRequest) string {
	messages := buildMessages(req)

	oaMessages := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		oaMessages[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}

	resp, err := d.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       d.model,
		Messages:    oaMessages,
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			d.logger.Error().
				Int("status", apiErr.HTTPStatusCode).
				Str("api_message", apiErr.Message).
				Msg("API request failed")
		} else {
			d.logger.Error().Err(err).Msg("chat completion request failed")
		}
		return Fallback
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		d.logger.Error().Str("model", d.model).Msg("received empty response from API")
		return Fallback
	}

	return resp.Choices[0].Message.Content
}

// Model возвращает имя используемой модели.
func (d *DeepSeek) Model() string {
	return d.model
}
