package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dnd-server/internal/model"
)

// createGameRoom создает новую игровую комнату. Владелец передается
// query-параметром owner_id и должен существовать.
func (h *Handler) createGameRoom(c *gin.Context) {
	ownerID, err := uuid.Parse(c.Query("owner_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid owner_id"})
		return
	}

	var req model.CreateGameRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	// Проверяем существование владельца
	if _, err := h.users.GetByID(c.Request.Context(), ownerID); err != nil {
		h.respondError(c, err, "Owner not found")
		return
	}

	room, err := h.rooms.Create(c.Request.Context(), model.GameRoom{
		Name:       req.Name,
		OwnerID:    ownerID,
		MaxPlayers: req.MaxPlayers,
		Settings:   req.Settings,
	})
	if err != nil {
		h.respondError(c, err, "Game room not found")
		return
	}

	c.JSON(http.StatusCreated, room)
}

// listGameRooms возвращает комнаты; по умолчанию только активные.
func (h *Handler) listGameRooms(c *gin.Context) {
	activeOnly := c.DefaultQuery("active_only", "true") == "true"

	rooms, err := h.rooms.List(c.Request.Context(), activeOnly)
	if err != nil {
		h.respondError(c, err, "Game room not found")
		return
	}

	c.JSON(http.StatusOK, rooms)
}

// getGameRoom возвращает комнату по ID.
func (h *Handler) getGameRoom(c *gin.Context) {
	id, ok := h.parseID(c, "room_id")
	if !ok {
		return
	}

	room, err := h.rooms.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Game room not found")
		return
	}

	c.JSON(http.StatusOK, room)
}

// updateGameRoom применяет частичное обновление комнаты.
func (h *Handler) updateGameRoom(c *gin.Context) {
	id, ok := h.parseID(c, "room_id")
	if !ok {
		return
	}

	var req model.UpdateGameRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	room, err := h.rooms.Update(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err, "Game room not found")
		return
	}

	c.JSON(http.StatusOK, room)
}

// deleteGameRoom выполняет мягкое удаление комнаты.
func (h *Handler) deleteGameRoom(c *gin.Context) {
	id, ok := h.parseID(c, "room_id")
	if !ok {
		return
	}

	room, err := h.rooms.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Game room not found")
		return
	}

	c.JSON(http.StatusOK, room)
}

// joinGameRoom добавляет пользователя в комнату.
func (h *Handler) joinGameRoom(c *gin.Context) {
	roomID, ok := h.parseID(c, "room_id")
	if !ok {
		return
	}
	userID, ok := h.parseID(c, "user_id")
	if !ok {
		return
	}

	room, err := h.rooms.Join(c.Request.Context(), roomID, userID)
	if err != nil {
		h.respondError(c, err, "Game room not found")
		return
	}

	c.JSON(http.StatusOK, room)
}

// leaveGameRoom убирает пользователя из комнаты.
func (h *Handler) leaveGameRoom(c *gin.Context) {
	roomID, ok := h.parseID(c, "room_id")
	if !ok {
		return
	}
	userID, ok := h.parseID(c, "user_id")
	if !ok {
		return
	}

	room, err := h.rooms.Leave(c.Request.Context(), roomID, userID)
	if err != nil {
		h.respondError(c, err, "Game room not found")
		return
	}

	c.JSON(http.StatusOK, room)
}

// listRoomCharacters возвращает персонажей комнаты.
func (h *Handler) listRoomCharacters(c *gin.Context) {
	roomID, ok := h.parseID(c, "room_id")
	if !ok {
		return
	}

	characters, err := h.characters.ListByRoom(c.Request.Context(), roomID)
	if err != nil {
		h.respondError(c, err, "Game room not found")
		return
	}

	c.JSON(http.StatusOK, characters)
}

// startSession открывает новый игровой сеанс в комнате.
func (h *Handler) startSession(c *gin.Context) {
	roomID, ok := h.parseID(c, "room_id")
	if !ok {
		return
	}

	// Сеанс можно открыть только в существующей активной комнате
	room, err := h.rooms.GetByID(c.Request.Context(), roomID)
	if err != nil {
		h.respondError(c, err, "Game room not found")
		return
	}
	if !room.Active {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Game room is not active"})
		return
	}

	session, err := h.sessions.Start(c.Request.Context(), roomID)
	if err != nil {
		h.respondError(c, err, "Game room not found")
		return
	}

	c.JSON(http.StatusCreated, session)
}
