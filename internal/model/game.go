package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Статусы игровой комнаты.
const (
	RoomStatusActive    = "active"
	RoomStatusPaused    = "paused"
	RoomStatusCompleted = "completed"
)

// GameRoom представляет игровую комнату, в которой идет одна кампания.
type GameRoom struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	Name       string          `json:"name" db:"name"`
	OwnerID    uuid.UUID       `json:"owner_id" db:"owner_id"`
	Status     string          `json:"status" db:"status"`
	MaxPlayers int             `json:"max_players" db:"max_players"`
	Settings   json.RawMessage `json:"settings" db:"settings"`
	Active     bool            `json:"active" db:"active"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	LastActive time.Time       `json:"last_active" db:"last_active"`
}

// CreateGameRoomRequest содержит данные для создания комнаты
type CreateGameRoomRequest struct {
	Name       string          `json:"name" binding:"required,min=1,max=100"`
	MaxPlayers int             `json:"max_players" binding:"omitempty,min=1,max=20"`
	Settings   json.RawMessage `json:"settings"`
}

// UpdateGameRoomRequest содержит изменяемые поля комнаты. Нулевые
// указатели означают "не менять".
type UpdateGameRoomRequest struct {
	Name       *string          `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Status     *string          `json:"status,omitempty" binding:"omitempty,oneof=active paused completed"`
	MaxPlayers *int             `json:"max_players,omitempty" binding:"omitempty,min=1,max=20"`
	Settings   *json.RawMessage `json:"settings,omitempty"`
}

// Character представляет персонажа пользователя в комнате.
type Character struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	UserID    uuid.UUID       `json:"user_id" db:"user_id"`
	RoomID    uuid.UUID       `json:"room_id" db:"room_id"`
	Name      string          `json:"name" db:"name"`
	ClassType string          `json:"class_type" db:"class_type"`
	Level     int             `json:"level" db:"level"`
	Stats     json.RawMessage `json:"stats" db:"stats"`
	Inventory json.RawMessage `json:"inventory" db:"inventory"`
}

// CreateCharacterRequest содержит данные для создания персонажа
type CreateCharacterRequest struct {
	UserID    uuid.UUID       `json:"user_id" binding:"required"`
	RoomID    uuid.UUID       `json:"room_id" binding:"required"`
	Name      string          `json:"name" binding:"required,min=1,max=100"`
	ClassType string          `json:"class_type" binding:"required"`
	Stats     json.RawMessage `json:"stats" binding:"required"`
	Inventory json.RawMessage `json:"inventory"`
}

// GameSession представляет один игровой сеанс внутри комнаты.
type GameSession struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	RoomID     uuid.UUID       `json:"room_id" db:"room_id"`
	StartedAt  time.Time       `json:"started_at" db:"started_at"`
	EndedAt    *time.Time      `json:"ended_at,omitempty" db:"ended_at"`
	SceneState json.RawMessage `json:"scene_state" db:"scene_state"`
}

// Типы сообщений в игровом сеансе.
const (
	MessageTypeAction     = "action"
	MessageTypeSpeech     = "speech"
	MessageTypeGMResponse = "gm_response"
	MessageTypeSystem     = "system"
)

// Message представляет одно сообщение игрового сеанса.
type Message struct {
	ID          uuid.UUID `json:"id" db:"id"`
	SessionID   uuid.UUID `json:"session_id" db:"session_id"`
	SenderID    uuid.UUID `json:"sender_id" db:"sender_id"`
	MessageType string    `json:"message_type" db:"message_type"`
	Content     string    `json:"content" db:"content"`
	Timestamp   time.Time `json:"timestamp" db:"timestamp"`
}

// CreateMessageRequest содержит данные для записи сообщения.
// Сеанс определяется параметром пути.
type CreateMessageRequest struct {
	SenderID    uuid.UUID `json:"sender_id" binding:"required"`
	MessageType string    `json:"message_type" binding:"required,oneof=action speech gm_response system"`
	Content     string    `json:"content" binding:"required"`
}
