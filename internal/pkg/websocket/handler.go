package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/schooladmin/internal/app/models"
	"github.com/yigit/schooladmin/internal/app/models/dto"
	"github.com/yigit/schooladmin/internal/pkg/apperrors"
)

// ActorFunc extracts the authenticated admin from a request
type ActorFunc func(c *gin.Context) (models.Actor, bool)

// Handler upgrades admin requests to activity feed connections
type Handler struct {
	hub    *Hub
	actor  ActorFunc
	logger zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, actor ActorFunc, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:    hub,
		actor:  actor,
		logger: logger,
	}
}

// HandleConnection streams activity log events to an authenticated admin
func (h *Handler) HandleConnection(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok || !actor.Known {
		detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, apperrors.ErrAdminRequired.Error())
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("admin", actor.Username).
			Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:      h.hub,
		conn:     conn,
		send:     make(chan []byte, 256),
		username: actor.Username,
		logger:   h.logger,
	}
	select {
	case client.hub.register <- client:
	case <-client.hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
