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

// UserRepository представляет репозиторий для работы с пользователями
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository создает новый экземпляр репозитория для работы с пользователями
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		pool: pool,
	}
}

// Create создает нового пользователя в базе данных
func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `
		INSERT INTO users (id, username, email, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, email, active_room_id, created_at
	`

	// Если ID не указан, генерируем новый
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	row := r.pool.QueryRow(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		time.Now(),
	)

	var createdUser model.User
	err := row.Scan(
		&createdUser.ID,
		&createdUser.Username,
		&createdUser.Email,
		&createdUser.ActiveRoomID,
		&createdUser.CreatedAt,
	)
	if err != nil {
		return model.User{}, err
	}

	return createdUser, nil
}

// GetByID получает пользователя по ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `
		SELECT id, username, email, active_room_id, created_at
		FROM users
		WHERE id = $1
	`

	var user model.User
	err := pgxscan.Get(ctx, r.pool, &user, query, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, err
	}

	return user, nil
}

// List возвращает всех пользователей
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	query := `
		SELECT id, username, email, active_room_id, created_at
		FROM users
		ORDER BY created_at
	`

	var users []model.User
	if err := pgxscan.Select(ctx, r.pool, &users, query); err != nil {
		return nil, err
	}

	return users, nil
}

// SetActiveRoom выставляет (или сбрасывает, если roomID == nil) активную
// комнату пользователя.
func (r *UserRepository) SetActiveRoom(ctx context.Context, userID uuid.UUID, roomID *uuid.UUID) error {
	query := `UPDATE users SET active_room_id = $2 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, userID, roomID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete удаляет пользователя
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM users WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}
