package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"dnd-server/internal/ai"
	"dnd-server/internal/game"
	"dnd-server/internal/model"
	"dnd-server/internal/repository"
)

// Version приложения, отдаваемая в /server-info.
const Version = "1.0.0"

// UserStore — операции над пользователями, нужные HTTP слою.
type UserStore interface {
	Create(ctx context.Context, user model.User) (model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// RoomStore — операции над игровыми комнатами.
type RoomStore interface {
	Create(ctx context.Context, room model.GameRoom) (model.GameRoom, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.GameRoom, error)
	List(ctx context.Context, activeOnly bool) ([]model.GameRoom, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateGameRoomRequest) (model.GameRoom, error)
	Deactivate(ctx context.Context, id uuid.UUID) (model.GameRoom, error)
	Join(ctx context.Context, roomID, userID uuid.UUID) (model.GameRoom, error)
	Leave(ctx context.Context, roomID, userID uuid.UUID) (model.GameRoom, error)
}

// CharacterStore — операции над персонажами.
type CharacterStore interface {
	Create(ctx context.Context, character model.Character) (model.Character, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.Character, error)
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]model.Character, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Character, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SessionStore — операции над игровыми сеансами и их сообщениями.
type SessionStore interface {
	Start(ctx context.Context, roomID uuid.UUID) (model.GameSession, error)
	End(ctx context.Context, id uuid.UUID) (model.GameSession, error)
	AddMessage(ctx context.Context, msg model.Message) (model.Message, error)
	Messages(ctx context.Context, sessionID uuid.UUID) ([]model.Message, error)
}

// Handler представляет HTTP обработчик REST API
type Handler struct {
	users      UserStore
	rooms      RoomStore
	characters CharacterStore
	sessions   SessionStore
	state      *game.State
	provider   ai.Provider
	logger     zerolog.Logger
}

// New создает новый экземпляр обработчика
func New(users UserStore, rooms RoomStore, characters CharacterStore, sessions SessionStore, state *game.State, provider ai.Provider, logger zerolog.Logger) *Handler {
	return &Handler{
		users:      users,
		rooms:      rooms,
		characters: characters,
		sessions:   sessions,
		state:      state,
		provider:   provider,
		logger:     logger.With().Str("component", "HTTPHandler").Logger(),
	}
}

// RegisterRoutes регистрирует маршруты API
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.getRoot)
	router.GET("/server-info", h.getServerInfo)

	api := router.Group("/api")

	users := api.Group("/users")
	users.POST("", h.createUser)
	users.GET("", h.listUsers)
	users.GET("/:user_id", h.getUser)
	users.DELETE("/:user_id", h.deleteUser)
	users.GET("/:user_id/characters", h.listUserCharacters)

	rooms := api.Group("/game-rooms")
	rooms.POST("", h.createGameRoom)
	rooms.GET("", h.listGameRooms)
	rooms.GET("/:room_id", h.getGameRoom)
	rooms.PATCH("/:room_id", h.updateGameRoom)
	rooms.DELETE("/:room_id", h.deleteGameRoom)
	rooms.POST("/:room_id/join/:user_id", h.joinGameRoom)
	rooms.POST("/:room_id/leave/:user_id", h.leaveGameRoom)
	rooms.GET("/:room_id/characters", h.listRoomCharacters)
	rooms.POST("/:room_id/sessions", h.startSession)

	characters := api.Group("/characters")
	characters.POST("", h.createCharacter)
	characters.GET("/:character_id", h.getCharacter)
	characters.DELETE("/:character_id", h.deleteCharacter)

	sessions := api.Group("/sessions")
	sessions.POST("/:session_id/end", h.endSession)
	sessions.POST("/:session_id/messages", h.addMessage)
	sessions.GET("/:session_id/messages", h.listMessages)
}

// getRoot отвечает на проверку живости сервиса.
func (h *Handler) getRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "D&D AI Game Master API is running",
	})
}

// getServerInfo отдает сводку о состоянии сервера.
func (h *Handler) getServerInfo(c *gin.Context) {
	snapshot := h.state.Snapshot()
	uptime := h.state.Uptime()

	seconds := int(uptime.Seconds())
	uptimeStr := fmt.Sprintf("%dh %dm %ds", seconds/3600, (seconds%3600)/60, seconds%60)

	c.JSON(http.StatusOK, gin.H{
		"status":           "online",
		"version":          Version,
		"uptime":           uptimeStr,
		"active_players":   snapshot.Players,
		"total_encounters": snapshot.Encounters,
		"total_rolls":      snapshot.Rolls,
		"model":            h.provider.Model(),
	})
}

// respondError превращает ошибку слоя хранения в HTTP ответ.
func (h *Handler) respondError(c *gin.Context, err error, notFoundDetail string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": notFoundDetail})
	case errors.Is(err, repository.ErrRoomInactive), errors.Is(err, repository.ErrRoomFull):
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	default:
		h.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
	}
}

// parseID разбирает UUID из параметра пути; при ошибке отвечает 400.
func (h *Handler) parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": fmt.Sprintf("invalid %s", param)})
		return uuid.Nil, false
	}
	return id, true
}
