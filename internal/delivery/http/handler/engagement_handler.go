package handler

import (
	"jobni/internal/delivery/http/dto"
	"jobni/internal/delivery/http/middleware"
	"jobni/internal/pkg/response"
	"jobni/internal/usecase"
	ucrating "jobni/internal/usecase/rating"

	"github.com/gofiber/fiber/v3"
)

type RatingHandler struct {
	uc usecase.RatingUsecase
}

func NewRatingHandler(uc usecase.RatingUsecase) *RatingHandler {
	return &RatingHandler{uc: uc}
}

func (h *RatingHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Post("/ratings", auth, h.Rate)
	r.Get("/ratings/user/:user_id", h.ListForUser)
}

func (h *RatingHandler) Rate(c fiber.Ctx) error {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		return err
	}
	var req dto.RatingRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	jobID, err := parseUUID(req.JobID, "job")
	if err != nil {
		return err
	}
	ratedID, err := parseUUID(req.RatedID, "user")
	if err != nil {
		return err
	}

	r, err := h.uc.Rate(c.Context(), actor, ucrating.RateInput{
		JobID:   jobID,
		RatedID: ratedID,
		Score:   req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusOK, dto.NewRatingResponse(r))
}

func (h *RatingHandler) ListForUser(c fiber.Ctx) error {
	id, err := uuidParam(c, "user_id", "user")
	if err != nil {
		return err
	}
	out, err := h.uc.ListForUser(c.Context(), id)
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusOK, dto.NewRatingResponses(out))
}

type NotificationHandler struct {
	uc usecase.NotificationUsecase
}

func NewNotificationHandler(uc usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

func (h *NotificationHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/notifications", auth, h.List)
	r.Put("/notifications/read-all", auth, h.MarkAllRead)
	r.Put("/notifications/:id/read", auth, h.MarkRead)
}

func (h *NotificationHandler) List(c fiber.Ctx) error {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.Context(), actor)
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusOK, dto.NewNotificationResponses(out))
}

func (h *NotificationHandler) MarkRead(c fiber.Ctx) error {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id", "notification")
	if err != nil {
		return err
	}
	if err := h.uc.MarkRead(c.Context(), actor, id); err != nil {
		return err
	}
	return response.Message(c, fiber.StatusOK, "Notification marked as read")
}

func (h *NotificationHandler) MarkAllRead(c fiber.Ctx) error {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		return err
	}
	n, err := h.uc.MarkAllRead(c.Context(), actor)
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusOK, fiber.Map{"message": "All notifications marked as read", "updated": n})
}
