package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	openRouterEndpoint     = "https://openrouter.ai/api/v1/chat/completions"
	openRouterDefaultModel = "anthropic/claude-2"
	openRouterKeyEnv       = "OPENROUTER_API_KEY"
	openRouterModelEnv     = "OPENROUTER_MODEL"
)

// OpenRouter — альтернативный провайдер, маршрутизирующий запросы через
// openrouter.ai. В отличие от DeepSeek дополнительно усиливает требования
// к разметке в системном промпте и прогоняет ответ через пост-обработку
// (см. markup.go), так как модели за роутером соблюдают разметку хуже.
type OpenRouter struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
	logger     zerolog.Logger
}

// chatRequest — тело запроса к chat-completion API.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stop        []string      `json:"stop"`
}

// chatResponse — интересующая нас часть тела ответа.
type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// NewOpenRouter создает провайдер OpenRouter. Ключ берется из apiKey или
// OPENROUTER_API_KEY, модель — из opts.Model, OPENROUTER_MODEL или значения
// по умолчанию. Отсутствие ключа — ошибка конфигурации на этапе создания.
func NewOpenRouter(apiKey string, opts Options) (*OpenRouter, error) {
	if apiKey == "" {
		apiKey = os.Getenv(openRouterKeyEnv)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%s not found in environment variables", openRouterKeyEnv)
	}

	model := opts.Model
	if model == "" {
		model = os.Getenv(openRouterModelEnv)
	}
	if model == "" {
		model = openRouterDefaultModel
	}

	endpoint := openRouterEndpoint
	if opts.BaseURL != "" {
		endpoint = opts.BaseURL
	}

	return &OpenRouter{
		apiKey:     apiKey,
		model:      model,
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     log.With().Str("component", "ai.openrouter").Logger(),
	}, nil
}

// Generate выполняет один POST к API и возвращает текст первого choice,
// прогнанный через пост-обработку разметки. Любая ошибка логируется и
// превращается в Fallback.
func (o *OpenRouter) Generate(ctx context.Context, req GenerateRequest) string {
	// Усиливаем требования к разметке: модели за роутером часто их игнорируют
	req.SystemPrompt = req.SystemPrompt + "\n\n" + markupReinforcement

	body, err := json.Marshal(chatRequest{
		Model:       o.model,
		Messages:    buildMessages(req),
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	})
	if err != nil {
		o.logger.Error().Err(err).Msg("failed to marshal request body")
		return Fallback
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewReader(body))
	if err != nil {
		o.logger.Error().Err(err).Msg("failed to create request")
		return Fallback
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
	httpReq.Header.Set("HTTP-Referer", "https://github.com/dvictor357/dnd-ai-gm")
	httpReq.Header.Set("X-Title", "DnD AI GM")

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		o.logger.Error().Err(err).Msg("API request failed")
		return Fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		o.logger.Error().
			Int("status", resp.StatusCode).
			Str("body", string(respBody)).
			Msg("API request failed")
		return Fallback
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		o.logger.Error().Err(err).Msg("failed to decode response body")
		return Fallback
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		o.logger.Error().Str("model", o.model).Msg("received empty response from API")
		return Fallback
	}

	return EnhanceMarkup(parsed.Choices[0].Message.Content)
}

// Model возвращает имя используемой модели.
func (o *OpenRouter) Model() string {
	return o.model
}
