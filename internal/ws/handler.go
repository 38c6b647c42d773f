package ws

import (
	"context"
	"net/http"
	"strings"

	"jobni/internal/domain/apperr"
	"jobni/internal/domain/user"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Authenticator resolves a bearer token to the calling actor.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (user.Actor, error)
}

// Access decides whether actor may watch a conversation.
type Access interface {
	CanWatch(ctx context.Context, actor user.Actor, conversationID uuid.UUID) error
}

type Handler struct {
	hub    *Hub
	auth   Authenticator
	access Access
	logger zerolog.Logger
}

func NewHandler(hub *Hub, auth Authenticator, access Access) *Handler {
	return &Handler{
		hub:    hub,
		auth:   auth,
		access: access,
		logger: log.With().Str("component", "ws").Logger(),
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleConversationWS authenticates with ?token= (browsers cannot set
// headers on a WebSocket handshake) and then streams message_posted events.
func (h *Handler) HandleConversationWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}

	topic, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.New(apperr.ErrInvalid, "Invalid conversation id")
	}

	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		if v := c.Get(fiber.HeaderAuthorization); len(v) > 7 && strings.EqualFold(v[:7], "bearer ") {
			token = strings.TrimSpace(v[7:])
		}
	}
	if token == "" {
		return apperr.New(apperr.ErrUnauthorized, "Not authenticated")
	}

	actor, err := h.auth.Authenticate(c.Context(), token)
	if err != nil {
		return err
	}
	if err := h.access.CanWatch(c.Context(), actor, topic); err != nil {
		return err
	}

	upgrade := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Warn().Err(err).Msg("ws upgrade failed")
			return
		}

		client := NewClient(h.hub, conn, topic)
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	})

	return upgrade(c)
}
