package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dnd-server/internal/model"
)

// createUser создает нового пользователя.
func (h *Handler) createUser(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	user, err := h.users.Create(c.Request.Context(), model.User{
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		h.respondError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusCreated, user)
}

// listUsers возвращает всех пользователей.
func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, users)
}

// getUser возвращает пользователя по ID.
func (h *Handler) getUser(c *gin.Context) {
	id, ok := h.parseID(c, "user_id")
	if !ok {
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, user)
}

// deleteUser удаляет пользователя.
func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := h.parseID(c, "user_id")
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "User not found")
		return
	}

	c.Status(http.StatusNoContent)
}

// listUserCharacters возвращает персонажей пользователя.
func (h *Handler) listUserCharacters(c *gin.Context) {
	id, ok := h.parseID(c, "user_id")
	if !ok {
		return
	}

	characters, err := h.characters.ListByUser(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, characters)
}
