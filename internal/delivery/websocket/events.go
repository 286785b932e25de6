package websocket

import (
	"dnd-server/internal/domain"
	"dnd-server/internal/game"
)

// Типы входящих событий от клиента.
const (
	eventCharacterCreated = "character_created"
	eventAction           = "action"
	eventRoll             = "roll"
	eventEndGame          = "end_game"
)

// Типы исходящих сообщений клиенту.
const (
	msgSystem      = "system"
	msgGMResponse  = "gm_response"
	msgStateUpdate = "state_update"
	msgRollResult  = "roll_result"
)

// inboundEvent — общая форма всех входящих событий. Какие поля заполнены,
// зависит от Type: character_created несет лист персонажа в data, action и
// end_game — в character, roll опционально несет нотацию костей.
type inboundEvent struct {
	Type      string                  `json:"type"`
	Data      *domain.CharacterSheet  `json:"data,omitempty"`
	Content   string                  `json:"content,omitempty"`
	Character *domain.CharacterSheet  `json:"character,omitempty"`
	Notation  string                  `json:"notation,omitempty"`
}

// contentMessage — системное сообщение или ответ гейм-мастера.
type contentMessage struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// stateUpdateMessage — рассылка агрегированного состояния сервера.
type stateUpdateMessage struct {
	Type       string `json:"type"`
	Players    int    `json:"players"`
	Encounters int64  `json:"encounters"`
	Rolls      int64  `json:"rolls"`
}

func newStateUpdate(s game.Snapshot) stateUpdateMessage {
	return stateUpdateMessage{
		Type:       msgStateUpdate,
		Players:    s.Players,
		Encounters: s.Encounters,
		Rolls:      s.Rolls,
	}
}

// rollResultMessage — итог серверного броска костей.
type rollResultMessage struct {
	Type     string `json:"type"`
	Notation string `json:"notation"`
	Rolls    []int  `json:"rolls"`
	Modifier int    `json:"modifier"`
	Total    int    `json:"total"`
}

func newRollResult(r game.RollResult) rollResultMessage {
	return rollResultMessage{
		Type:     msgRollResult,
		Notation: r.Notation,
		Rolls:    r.Rolls,
		Modifier: r.Modifier,
		Total:    r.Total,
	}
}
