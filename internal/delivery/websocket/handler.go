package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"dnd-server/internal/ai"
	"dnd-server/internal/domain"
	"dnd-server/internal/game"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Проверяем origin запроса (в продакшене здесь должна быть проверка)
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler обрабатывает игровые WebSocket соединения: принимает события
// клиента, обращается к AI-провайдеру и шлет ответы гейм-мастера.
type Handler struct {
	state    *game.State
	provider ai.Provider
	logger   zerolog.Logger
}

// NewHandler создает обработчик WebSocket.
func NewHandler(state *game.State, provider ai.Provider, logger zerolog.Logger) *Handler {
	return &Handler{
		state:    state,
		provider: provider,
		logger:   logger.With().Str("component", "WebSocketHandler").Logger(),
	}
}

// ServeWS обновляет HTTP запрос до WebSocket и запускает обработку событий.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to upgrade connection")
		// Не пишем ошибку в http.ResponseWriter, так как upgrader уже это сделал
		return
	}

	h.logger.Info().Str("remote", conn.RemoteAddr().String()).Msg("WebSocket connection established")

	client := newClient(conn)
	go client.writePump(h.logger)
	h.readLoop(client)
}

// readLoop читает и обрабатывает события соединения последовательно:
// следующее событие не разбирается, пока не завершен ответ на предыдущее.
func (h *Handler) readLoop(client *Client) {
	// Контекст соединения: отменяется при закрытии, обрывая запрос к провайдеру
	ctx, cancel := context.WithCancel(context.Background())

	defer func() {
		cancel()
		client.close()
		if client.playerID != "" {
			h.state.Disconnect(client.playerID)
			h.logger.Info().Str("playerID", client.playerID).Msg("player disconnected")
		}
	}()

	client.conn.SetReadLimit(maxMessageSize)
	_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn().Err(err).Msg("WebSocket read error")
			}
			return
		}

		var event inboundEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			h.logger.Warn().Err(err).Msg("failed to decode event")
			client.enqueue(h.logger, contentMessage{Type: msgSystem, Content: fmt.Sprintf("An error occurred: %s", err)})
			continue
		}

		h.handleEvent(ctx, client, event)
	}
}

func (h *Handler) handleEvent(ctx context.Context, client *Client, event inboundEvent) {
	switch event.Type {
	case eventCharacterCreated:
		h.handleCharacterCreated(ctx, client, event)
	case eventAction:
		h.handleAction(ctx, client, event)
	case eventRoll:
		h.handleRoll(client, event)
	case eventEndGame:
		h.handleEndGame(client, event)
	default:
		h.logger.Warn().Str("type", event.Type).Msg("unknown event type ignored")
	}
}

// missingSheetField возвращает имя первого незаполненного обязательного
// поля листа персонажа или пустую строку, если лист полон.
func missingSheetField(sheet domain.CharacterSheet) string {
	switch {
	case sheet.Name == "":
		return "name"
	case sheet.Race == "":
		return "race"
	case sheet.Class == "":
		return "class"
	case sheet.Background == "":
		return "background"
	}
	return ""
}

// handleCharacterCreated регистрирует игрока, приветствует его и просит
// гейм-мастера открыть приключение. Событие без полного листа персонажа
// отклоняется системным сообщением об ошибке.
func (h *Handler) handleCharacterCreated(ctx context.Context, client *Client, event inboundEvent) {
	if event.Data == nil {
		client.enqueue(h.logger, contentMessage{Type: msgSystem, Content: "An error occurred: 'data'"})
		return
	}
	if field := missingSheetField(*event.Data); field != "" {
		client.enqueue(h.logger, contentMessage{Type: msgSystem, Content: fmt.Sprintf("An error occurred: '%s'", field)})
		return
	}
	character := *event.Data

	playerID := fmt.Sprintf("%s_%d", character.Name, time.Now().UnixNano())
	client.playerID = playerID

	h.state.Connect(playerID)
	h.state.SetCharacter(playerID, character)
	h.logger.Info().Str("playerID", playerID).Str("class", character.Class).Msg("character created")

	client.enqueue(h.logger, contentMessage{Type: msgSystem, Content: game.WelcomeMessage(character)})

	response := h.generate(ctx, ai.GenerateRequest{
		Message:      game.OpeningPrompt(character),
		SystemPrompt: game.SystemPrompt,
		Character:    &character,
	})

	h.state.RecordTurn(playerID, domain.Turn{Type: domain.TurnGMResponse, Content: response})

	client.enqueue(h.logger, contentMessage{Type: msgGMResponse, Content: response})
	client.enqueue(h.logger, newStateUpdate(h.state.Snapshot()))
}

// handleAction передает действие игрока гейм-мастеру. Событие без поля
// content некорректно и отклоняется системным сообщением; событие без
// зарегистрированного персонажа молча игнорируется.
func (h *Handler) handleAction(ctx context.Context, client *Client, event inboundEvent) {
	if event.Character == nil {
		return
	}
	if event.Content == "" {
		client.enqueue(h.logger, contentMessage{Type: msgSystem, Content: "An error occurred: 'content'"})
		return
	}
	playerID := h.state.FindPlayerByCharacter(event.Character.Name)
	if playerID == "" {
		h.logger.Debug().Str("character", event.Character.Name).Msg("action for unknown character ignored")
		return
	}

	h.state.RecordTurn(playerID, domain.Turn{Type: domain.TurnAction, Content: event.Content})

	response := h.generate(ctx, ai.GenerateRequest{
		Message:      event.Content,
		SystemPrompt: game.SystemPrompt,
		Character:    event.Character,
		History:      h.state.History(playerID),
	})

	h.state.RecordTurn(playerID, domain.Turn{Type: domain.TurnGMResponse, Content: response})

	client.enqueue(h.logger, contentMessage{Type: msgGMResponse, Content: response})

	h.state.IncrementEncounters()
	client.enqueue(h.logger, newStateUpdate(h.state.Snapshot()))
}

// handleRoll учитывает бросок костей. Если клиент прислал нотацию,
// бросок выполняется на сервере и результат возвращается клиенту.
func (h *Handler) handleRoll(client *Client, event inboundEvent) {
	if event.Notation != "" {
		result, err := game.Roll(event.Notation)
		if err != nil {
			client.enqueue(h.logger, contentMessage{Type: msgSystem, Content: fmt.Sprintf("An error occurred: %s", err)})
			return
		}
		client.enqueue(h.logger, newRollResult(result))
	}

	h.state.IncrementRolls()
	client.enqueue(h.logger, newStateUpdate(h.state.Snapshot()))
}

// handleEndGame завершает приключение персонажа и чистит его состояние.
func (h *Handler) handleEndGame(client *Client, event inboundEvent) {
	if event.Character == nil {
		return
	}
	playerID := h.state.FindPlayerByCharacter(event.Character.Name)
	if playerID == "" {
		return
	}

	h.state.Disconnect(playerID)
	if client.playerID == playerID {
		client.playerID = ""
	}
	h.logger.Info().Str("playerID", playerID).Msg("game ended")

	client.enqueue(h.logger, contentMessage{Type: msgSystem, Content: game.FarewellMessage(event.Character.Name)})
	client.enqueue(h.logger, newStateUpdate(h.state.Snapshot()))
}

// generate вызывает провайдера и нормализует разметку бросков в ответе.
func (h *Handler) generate(ctx context.Context, req ai.GenerateRequest) string {
	return game.WrapDiceRolls(h.provider.Generate(ctx, req))
}
