package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dnd-server/internal/model"
)

// createCharacter создает персонажа пользователя в комнате.
func (h *Handler) createCharacter(c *gin.Context) {
	var req model.CreateCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if _, err := h.users.GetByID(c.Request.Context(), req.UserID); err != nil {
		h.respondError(c, err, "User not found")
		return
	}
	if _, err := h.rooms.GetByID(c.Request.Context(), req.RoomID); err != nil {
		h.respondError(c, err, "Game room not found")
		return
	}

	character, err := h.characters.Create(c.Request.Context(), model.Character{
		UserID:    req.UserID,
		RoomID:    req.RoomID,
		Name:      req.Name,
		ClassType: req.ClassType,
		Stats:     req.Stats,
		Inventory: req.Inventory,
	})
	if err != nil {
		h.respondError(c, err, "Character not found")
		return
	}

	c.JSON(http.StatusCreated, character)
}

// getCharacter возвращает персонажа по ID.
func (h *Handler) getCharacter(c *gin.Context) {
	id, ok := h.parseID(c, "character_id")
	if !ok {
		return
	}

	character, err := h.characters.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Character not found")
		return
	}

	c.JSON(http.StatusOK, character)
}

// deleteCharacter удаляет персонажа.
func (h *Handler) deleteCharacter(c *gin.Context) {
	id, ok := h.parseID(c, "character_id")
	if !ok {
		return
	}

	if err := h.characters.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "Character not found")
		return
	}

	c.Status(http.StatusNoContent)
}

// endSession закрывает игровой сеанс.
func (h *Handler) endSession(c *gin.Context) {
	id, ok := h.parseID(c, "session_id")
	if !ok {
		return
	}

	session, err := h.sessions.End(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Game session not found")
		return
	}

	c.JSON(http.StatusOK, session)
}

// addMessage записывает сообщение в сеанс.
func (h *Handler) addMessage(c *gin.Context) {
	sessionID, ok := h.parseID(c, "session_id")
	if !ok {
		return
	}

	var req model.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	msg, err := h.sessions.AddMessage(c.Request.Context(), model.Message{
		SessionID:   sessionID,
		SenderID:    req.SenderID,
		MessageType: req.MessageType,
		Content:     req.Content,
	})
	if err != nil {
		h.respondError(c, err, "Game session not found")
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// listMessages возвращает сообщения сеанса в порядке отправки.
func (h *Handler) listMessages(c *gin.Context) {
	sessionID, ok := h.parseID(c, "session_id")
	if !ok {
		return
	}

	messages, err := h.sessions.Messages(c.Request.Context(), sessionID)
	if err != nil {
		h.respondError(c, err, "Game session not found")
		return
	}

	c.JSON(http.StatusOK, messages)
}
