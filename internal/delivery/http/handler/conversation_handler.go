package handler

import (
	"strconv"
	"strings"
	"time"

	"jobni/internal/delivery/http/dto"
	"jobni/internal/delivery/http/middleware"
	"jobni/internal/pkg/response"
	"jobni/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// HeaderPollInterval advertises, in seconds, how often clients should poll
// for new messages.
const HeaderPollInterval = "X-Poll-Interval"

type ConversationHandler struct {
	uc           usecase.ConversationUsecase
	pollInterval time.Duration
}

func NewConversationHandler(uc usecase.ConversationUsecase, pollInterval time.Duration) *ConversationHandler {
	return &ConversationHandler{uc: uc, pollInterval: pollInterval}
}

func (h *ConversationHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/conversations", auth, h.List)
	r.Get("/conversations/:id/messages", auth, h.ListMessages)
	r.Post("/conversations/:id/messages", auth, h.Post)
}

func (h *ConversationHandler) List(c fiber.Ctx) error {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		return err
	}
	convs, err := h.uc.List(c.Context(), actor)
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusOK, dto.NewConversationResponses(convs))
}

// ListMessages returns the full log, or with ?after=<message id> only what
// was appended since.
func (h *ConversationHandler) ListMessages(c fiber.Ctx) error {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id", "conversation")
	if err != nil {
		return err
	}

	var after *uuid.UUID
	if raw := strings.TrimSpace(c.Query("after")); raw != "" {
		v, err := parseUUID(raw, "message")
		if err != nil {
			return err
		}
		after = &v
	}

	msgs, err := h.uc.ListMessages(c.Context(), actor, id, after)
	if err != nil {
		return err
	}
	if h.pollInterval > 0 {
		c.Set(HeaderPollInterval, strconv.Itoa(int(h.pollInterval.Seconds())))
	}
	return response.JSON(c, fiber.StatusOK, dto.NewMessageResponses(msgs))
}

func (h *ConversationHandler) Post(c fiber.Ctx) error {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id", "conversation")
	if err != nil {
		return err
	}
	var req dto.PostMessageRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	m, err := h.uc.Post(c.Context(), actor, id, req.MessageText)
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusOK, dto.NewMessageResponse(m))
}
