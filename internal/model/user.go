package model

import (
	"time"

	"github.com/google/uuid"
)

// User представляет модель пользователя в системе
type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Username     string     `json:"username" db:"username"`
	Email        string     `json:"email" db:"email"`
	ActiveRoomID *uuid.UUID `json:"active_room_id,omitempty" db:"active_room_id"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

// CreateUserRequest содержит данные для создания пользователя
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
}
