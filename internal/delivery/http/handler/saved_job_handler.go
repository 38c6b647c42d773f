package handler

import (
	"jobni/internal/delivery/http/middleware"
	"jobni/internal/pkg/response"
	"jobni/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SavedJobHandler struct {
	uc usecase.SavedJobUsecase
}

func NewSavedJobHandler(uc usecase.SavedJobUsecase) *SavedJobHandler {
	return &SavedJobHandler{uc: uc}
}

func (h *SavedJobHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/saved-jobs", auth, h.List)
	r.Post("/saved-jobs/:job_id", auth, h.Save)
	r.Delete("/saved-jobs/:job_id", auth, h.Unsave)
}

func (h *SavedJobHandler) List(c fiber.Ctx) error {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		return err
	}
	ids, err := h.uc.List(c.Context(), actor)
	if err != nil {
		return err
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return response.JSON(c, fiber.StatusOK, out)
}

func (h *SavedJobHandler) Save(c fiber.Ctx) error {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "job_id", "job")
	if err != nil {
		return err
	}
	if err := h.uc.Save(c.Context(), actor, jobID); err != nil {
		return err
	}
	return response.Message(c, fiber.StatusOK, "Job saved successfully")
}

func (h *SavedJobHandler) Unsave(c fiber.Ctx) error {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "job_id", "job")
	if err != nil {
		return err
	}
	if err := h.uc.Unsave(c.Context(), actor, jobID); err != nil {
		return err
	}
	return response.Message(c, fiber.StatusOK, "Job removed from saved")
}
