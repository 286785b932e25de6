package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dnd-server/internal/model"
)

const roomColumns = "id, name, owner_id, status, max_players, settings, active, created_at, last_active"

// RoomRepository представляет репозиторий для работы с игровыми комнатами
type RoomRepository struct {
	pool *pgxpool.Pool
}

// NewRoomRepository создает новый экземпляр репозитория для работы с комнатами
func NewRoomRepository(pool *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{
		pool: pool,
	}
}

// Create создает новую игровую комнату
func (r *RoomRepository) Create(ctx context.Context, room model.GameRoom) (model.GameRoom, error) {
	query := fmt.Sprintf(`
		INSERT INTO game_rooms (id, name, owner_id, status, max_players, settings, active, created_at, last_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING %s
	`, roomColumns)

	if room.ID == uuid.Nil {
		room.ID = uuid.New()
	}
	if room.Status == "" {
		room.Status = model.RoomStatusActive
	}
	if room.MaxPlayers == 0 {
		room.MaxPlayers = 6
	}
	if len(room.Settings) == 0 {
		room.Settings = []byte("{}")
	}

	var created model.GameRoom
	err := pgxscan.Get(ctx, r.pool, &created, query,
		room.ID,
		room.Name,
		room.OwnerID,
		room.Status,
		room.MaxPlayers,
		room.Settings,
		true,
		time.Now(),
	)
	if err != nil {
		return model.GameRoom{}, err
	}

	return created, nil
}

// GetByID получает комнату по ID
func (r *RoomRepository) GetByID(ctx context.Context, id uuid.UUID) (model.GameRoom, error) {
	query := fmt.Sprintf(`SELECT %s FROM game_rooms WHERE id = $1`, roomColumns)

	var room model.GameRoom
	err := pgxscan.Get(ctx, r.pool, &room, query, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.GameRoom{}, ErrNotFound
		}
		return model.GameRoom{}, err
	}

	return room, nil
}

// List возвращает комнаты, по умолчанию только активные
func (r *RoomRepository) List(ctx context.Context, activeOnly bool) ([]model.GameRoom, error) {
	query := fmt.Sprintf(`SELECT %s FROM game_rooms`, roomColumns)
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	var rooms []model.GameRoom
	if err := pgxscan.Select(ctx, r.pool, &rooms, query); err != nil {
		return nil, err
	}

	return rooms, nil
}

// Update применяет частичное обновление комнаты
func (r *RoomRepository) Update(ctx context.Context, id uuid.UUID, req model.UpdateGameRoomRequest) (model.GameRoom, error) {
	query := fmt.Sprintf(`
		UPDATE game_rooms
		SET name = COALESCE($2, name),
		    status = COALESCE($3, status),
		    max_players = COALESCE($4, max_players),
		    settings = COALESCE($5, settings),
		    last_active = $6
		WHERE id = $1
		RETURNING %s
	`, roomColumns)

	var settings []byte
	if req.Settings != nil {
		settings = *req.Settings
	}

	var updated model.GameRoom
	err := pgxscan.Get(ctx, r.pool, &updated, query,
		id,
		req.Name,
		req.Status,
		req.MaxPlayers,
		settings,
		time.Now(),
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.GameRoom{}, ErrNotFound
		}
		return model.GameRoom{}, err
	}

	return updated, nil
}

// Deactivate выполняет мягкое удаление комнаты (active = FALSE)
func (r *RoomRepository) Deactivate(ctx context.Context, id uuid.UUID) (model.GameRoom, error) {
	query := fmt.Sprintf(`
		UPDATE game_rooms
		SET active = FALSE, last_active = $2
		WHERE id = $1
		RETURNING %s
	`, roomColumns)

	var room model.GameRoom
	err := pgxscan.Get(ctx, r.pool, &room, query, id, time.Now())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.GameRoom{}, ErrNotFound
		}
		return model.GameRoom{}, err
	}

	return room, nil
}

// Join добавляет пользователя в комнату. Проверки активности и вместимости
// выполняются в одной транзакции с блокировкой строки комнаты.
func (r *RoomRepository) Join(ctx context.Context, roomID, userID uuid.UUID) (model.GameRoom, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return model.GameRoom{}, err
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf(`SELECT %s FROM game_rooms WHERE id = $1 FOR UPDATE`, roomColumns)

	var room model.GameRoom
	if err := pgxscan.Get(ctx, tx, &room, query, roomID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.GameRoom{}, ErrNotFound
		}
		return model.GameRoom{}, err
	}

	if !room.Active {
		return model.GameRoom{}, ErrRoomInactive
	}

	var occupied int
	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE active_room_id = $1 AND id <> $2`, roomID, userID).Scan(&occupied)
	if err != nil {
		return model.GameRoom{}, err
	}
	if occupied >= room.MaxPlayers {
		return model.GameRoom{}, ErrRoomFull
	}

	tag, err := tx.Exec(ctx, `UPDATE users SET active_room_id = $2 WHERE id = $1`, userID, roomID)
	if err != nil {
		return model.GameRoom{}, err
	}
	if tag.RowsAffected() == 0 {
		return model.GameRoom{}, ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return model.GameRoom{}, err
	}

	return room, nil
}

// Leave убирает пользователя из комнаты. Повторный выход безвреден.
func (r *RoomRepository) Leave(ctx context.Context, roomID, userID uuid.UUID) (model.GameRoom, error) {
	room, err := r.GetByID(ctx, roomID)
	if err != nil {
		return model.GameRoom{}, err
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET active_room_id = NULL WHERE id = $1 AND active_room_id = $2`,
		userID, roomID,
	)
	if err != nil {
		return model.GameRoom{}, err
	}
	if tag.RowsAffected() == 0 {
		// Пользователь либо не существует, либо не был в комнате
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
			return model.GameRoom{}, err
		}
		if !exists {
			return model.GameRoom{}, ErrNotFound
		}
	}

	return room, nil
}
