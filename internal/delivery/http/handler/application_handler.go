package handler

import (
	"jobni/internal/delivery/http/dto"
	"jobni/internal/delivery/http/middleware"
	"jobni/internal/pkg/response"
	"jobni/internal/usecase"
	ucapplication "jobni/internal/usecase/application"

	"github.com/gofiber/fiber/v3"
)

type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Post("/applications", auth, h.Apply)
	r.Get("/applications", auth, h.List)
	r.Get("/applications/job/:job_id", auth, h.ListForJob)
	r.Put("/applications/:id", auth, h.UpdateStatus)
}

func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		return err
	}
	var req dto.ApplyRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	jobID, err := parseUUID(req.JobID, "job")
	if err != nil {
		return err
	}

	a, err := h.uc.Apply(c.Context(), actor, ucapplication.ApplyInput{JobID: jobID, Message: req.Message})
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusOK, dto.NewApplicationResponse(a))
}

func (h *ApplicationHandler) List(c fiber.Ctx) error {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		return err
	}
	views, err := h.uc.List(c.Context(), actor)
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusOK, dto.NewApplicationViewResponses(views))
}

func (h *ApplicationHandler) ListForJob(c fiber.Ctx) error {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "job_id", "job")
	if err != nil {
		return err
	}
	views, err := h.uc.ListForJob(c.Context(), actor, jobID)
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusOK, dto.NewApplicationViewResponses(views))
}

func (h *ApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id", "application")
	if err != nil {
		return err
	}
	var req dto.UpdateApplicationStatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	a, err := h.uc.UpdateStatus(c.Context(), actor, id, req.Status)
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusOK, dto.NewApplicationResponse(a))
}
