package repository

import "errors"

// Сигнальные ошибки слоя хранения. Обработчики HTTP превращают их
// в соответствующие статусы ответа.
var (
	// ErrNotFound — запрошенная запись отсутствует.
	ErrNotFound = errors.New("record not found")
	// ErrRoomInactive — операция над неактивной комнатой.
	ErrRoomInactive = errors.New("game room is not active")
	// ErrRoomFull — комната уже заполнена.
	ErrRoomFull = errors.New("game room is full")
)
