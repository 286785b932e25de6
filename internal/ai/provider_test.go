package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dnd-server/internal/domain"
)

func TestBuildMessages(t *testing.T) {
	t.Run("roles and ordering", func(t *testing.T) {
		character := &domain.CharacterSheet{Name: "Thorn", Race: "Human", Class: "Fighter", Background: "Soldier"}
		req := GenerateRequest{
			Message:      "I open the door",
			SystemPrompt: "You are the GM",
			Character:    character,
			History: []domain.Turn{
				{Type: domain.TurnAction, Content: "I enter the tavern"},
				{Type: domain.TurnGMResponse, Content: "The tavern is crowded"},
			},
		}

		msgs := buildMessages(req)
		require.Len(t, msgs, 5)

		assert.Equal(t, roleSystem, msgs[0].Role)
		assert.Equal(t, "You are the GM", msgs[0].Content)
		assert.Equal(t, roleSystem, msgs[1].Role)
		assert.Contains(t, msgs[1].Content, "Thorn")
		assert.Equal(t, chatMessage{Role: roleUser, Content: "I enter the tavern"}, msgs[2])
		assert.Equal(t, chatMessage{Role: roleAssistant, Content: "The tavern is crowded"}, msgs[3])
		assert.Equal(t, chatMessage{Role: roleUser, Content: "I open the door"}, msgs[4])
	})

	t.Run("without character", func(t *testing.T) {
		msgs := buildMessages(GenerateRequest{Message: "hello", SystemPrompt: "prompt"})
		require.Len(t, msgs, 2)
		assert.Equal(t, roleSystem, msgs[0].Role)
		assert.Equal(t, roleUser, msgs[1].Role)
	})

	t.Run("history trimmed to limit", func(t *testing.T) {
		history := make([]domain.Turn, 0, 15)
		for i := 0; i < 15; i++ {
			history = append(history, domain.Turn{Type: domain.TurnAction, Content: "a"})
		}

		msgs := buildMessages(GenerateRequest{Message: "hello", SystemPrompt: "prompt", History: history})
		// Системный промпт + 10 последних реплик + новое сообщение
		assert.Len(t, msgs, domain.HistoryLimit+2)
	})

	t.Run("empty entries dropped", func(t *testing.T) {
		req := GenerateRequest{
			Message:      "hello",
			SystemPrompt: "prompt",
			History: []domain.Turn{
				{Type: domain.TurnAction, Content: ""},
				{Type: domain.TurnGMResponse, Content: "reply"},
			},
		}

		msgs := buildMessages(req)
		require.Len(t, msgs, 3)
		for _, m := range msgs {
			assert.NotEmpty(t, m.Content)
		}
	})

	t.Run("unknown turn types skipped", func(t *testing.T) {
		req := GenerateRequest{
			Message:      "hello",
			SystemPrompt: "prompt",
			History: []domain.Turn{
				{Type: "weird", Content: "ignore me"},
			},
		}

		msgs := buildMessages(req)
		assert.Len(t, msgs, 2)
	})
}
