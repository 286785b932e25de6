package ai

import (
	"context"
	"time"

	"dnd-server/internal/domain"
)

// Fallback — фиксированный ответ игроку при любой ошибке провайдера.
// Живой чат не должен замолкать или падать из-за одного неудачного запроса,
// поэтому реализации обязаны перехватывать все сетевые и парсинговые ошибки
// и возвращать эту строку вместо них.
const Fallback = "I apologize, but I'm having trouble processing your request at the moment. Please try again."

// Общие параметры запроса к chat-completion API.
const (
	requestTimeout     = 30 * time.Second
	defaultTemperature = 0.7
	defaultMaxTokens   = 800
)

// GenerateRequest содержит все входные данные для генерации ответа
// гейм-мастера: сообщение игрока, системный промпт, опциональный контекст
// персонажа и историю диалога.
type GenerateRequest struct {
	Message      string
	SystemPrompt string
	Character    *domain.CharacterSheet
	History      []domain.Turn
}

// Provider — контракт AI-бэкенда: текст по сообщению и контексту.
//
// Generate никогда не возвращает ошибку: любая проблема с сетью, таймаутом
// или телом ответа логируется внутри реализации и превращается в Fallback.
type Provider interface {
	Generate(ctx context.Context, req GenerateRequest) string
	// Model возвращает имя используемой модели (для /server-info).
	Model() string
}

// Роли сообщений chat-completion API.
const (
	roleSystem    = "system"
	roleUser      = "user"
	roleAssistant = "assistant"
)

// chatMessage — одно сообщение в последовательности, отправляемой провайдеру.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// buildMessages собирает последовательность сообщений для провайдера:
// системный промпт, опциональный контекст персонажа (вторым системным
// сообщением), последние реплики истории и новое сообщение игрока.
// Сообщения с пустым содержимым отбрасываются.
func buildMessages(req GenerateRequest) []chatMessage {
	msgs := make([]chatMessage, 0, len(req.History)+3)

	msgs = append(msgs, chatMessage{Role: roleSystem, Content: req.SystemPrompt})

	if req.Character != nil {
		msgs = append(msgs, chatMessage{Role: roleSystem, Content: req.Character.Context()})
	}

	history := req.History
	if len(history) > domain.HistoryLimit {
		history = history[len(history)-domain.HistoryLimit:]
	}
	for _, turn := range history {
		switch turn.Type {
		case domain.TurnAction:
			msgs = append(msgs, chatMessage{Role: roleUser, Content: turn.Content})
		case domain.TurnGMResponse:
			msgs = append(msgs, chatMessage{Role: roleAssistant, Content: turn.Content})
		}
	}

	msgs = append(msgs, chatMessage{Role: roleUser, Content: req.Message})

	filtered := msgs[:0]
	for _, m := range msgs {
		if m.Content != "" {
			filtered = append(filtered, m)
		}
	}
	return filtered
}
