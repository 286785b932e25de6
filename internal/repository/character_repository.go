package repository

import (
	"context"
	"errors"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dnd-server/internal/model"
)

// CharacterRepository представляет репозиторий для работы с персонажами
type CharacterRepository struct {
	pool *pgxpool.Pool
}

// NewCharacterRepository создает новый экземпляр репозитория для работы с персонажами
func NewCharacterRepository(pool *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{
		pool: pool,
	}
}

// Create создает нового персонажа
func (r *CharacterRepository) Create(ctx context.Context, character model.Character) (model.Character, error) {
	query := `
		INSERT INTO characters (id, user_id, room_id, name, class_type, level, stats, inventory)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, user_id, room_id, name, class_type, level, stats, inventory
	`

	if character.ID == uuid.Nil {
		character.ID = uuid.New()
	}
	if character.Level == 0 {
		character.Level = 1
	}
	if len(character.Inventory) == 0 {
		character.Inventory = []byte("[]")
	}

	var created model.Character
	err := pgxscan.Get(ctx, r.pool, &created, query,
		character.ID,
		character.UserID,
		character.RoomID,
		character.Name,
		character.ClassType,
		character.Level,
		character.Stats,
		character.Inventory,
	)
	if err != nil {
		return model.Character{}, err
	}

	return created, nil
}

// GetByID получает персонажа по ID
func (r *CharacterRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Character, error) {
	query := `
		SELECT id, user_id, room_id, name, class_type, level, stats, inventory
		FROM characters
		WHERE id = $1
	`

	var character model.Character
	err := pgxscan.Get(ctx, r.pool, &character, query, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Character{}, ErrNotFound
		}
		return model.Character{}, err
	}

	return character, nil
}

// ListByRoom возвращает всех персонажей комнаты
func (r *CharacterRepository) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]model.Character, error) {
	query := `
		SELECT id, user_id, room_id, name, class_type, level, stats, inventory
		FROM characters
		WHERE room_id = $1
		ORDER BY name
	`

	var characters []model.Character
	if err := pgxscan.Select(ctx, r.pool, &characters, query, roomID); err != nil {
		return nil, err
	}

	return characters, nil
}

// ListByUser возвращает всех персонажей пользователя
func (r *CharacterRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Character, error) {
	query := `
		SELECT id, user_id, room_id, name, class_type, level, stats, inventory
		FROM characters
		WHERE user_id = $1
		ORDER BY name
	`

	var characters []model.Character
	if err := pgxscan.Select(ctx, r.pool, &characters, query, userID); err != nil {
		return nil, err
	}

	return characters, nil
}

// Delete удаляет персонажа
func (r *CharacterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM characters WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

// SessionRepository представляет репозиторий для игровых сеансов и их сообщений
type SessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository создает новый экземпляр репозитория игровых сеансов
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{
		pool: pool,
	}
}

// Start открывает новый игровой сеанс в комнате
func (r *SessionRepository) Start(ctx context.Context, roomID uuid.UUID) (model.GameSession, error) {
	query := `
		INSERT INTO game_sessions (id, room_id, started_at, scene_state)
		VALUES ($1, $2, $3, '{}')
		RETURNING id, room_id, started_at, ended_at, scene_state
	`

	var session model.GameSession
	err := pgxscan.Get(ctx, r.pool, &session, query, uuid.New(), roomID, time.Now())
	if err != nil {
		return model.GameSession{}, err
	}

	return session, nil
}

// End закрывает игровой сеанс
func (r *SessionRepository) End(ctx context.Context, id uuid.UUID) (model.GameSession, error) {
	query := `
		UPDATE game_sessions
		SET ended_at = $2
		WHERE id = $1 AND ended_at IS NULL
		RETURNING id, room_id, started_at, ended_at, scene_state
	`

	var session model.GameSession
	err := pgxscan.Get(ctx, r.pool, &session, query, id, time.Now())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.GameSession{}, ErrNotFound
		}
		return model.GameSession{}, err
	}

	return session, nil
}

// AddMessage записывает сообщение сеанса
func (r *SessionRepository) AddMessage(ctx context.Context, msg model.Message) (model.Message, error) {
	query := `
		INSERT INTO messages (id, session_id, sender_id, message_type, content, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, session_id, sender_id, message_type, content, timestamp
	`

	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}

	var created model.Message
	err := pgxscan.Get(ctx, r.pool, &created, query,
		msg.ID,
		msg.SessionID,
		msg.SenderID,
		msg.MessageType,
		msg.Content,
		time.Now(),
	)
	if err != nil {
		return model.Message{}, err
	}

	return created, nil
}

// Messages возвращает сообщения сеанса в порядке отправки
func (r *SessionRepository) Messages(ctx context.Context, sessionID uuid.UUID) ([]model.Message, error) {
	query := `
		SELECT id, session_id, sender_id, message_type, content, timestamp
		FROM messages
		WHERE session_id = $1
		ORDER BY timestamp
	`

	var messages []model.Message
	if err := pgxscan.Select(ctx, r.pool, &messages, query, sessionID); err != nil {
		return nil, err
	}

	return messages, nil
}
