package handler

import (
	"fmt"

	"jobni/internal/delivery/http/middleware"
	"jobni/internal/pkg/response"
	"jobni/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ReportHandler struct {
	uc usecase.ReportUsecase
}

func NewReportHandler(uc usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/reports/stats", auth, h.Stats)
	r.Get("/reports/invoice/:application_id", auth, h.Invoice)
	r.Get("/admin/stats", auth, h.AdminStats)
}

func (h *ReportHandler) Stats(c fiber.Ctx) error {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		return err
	}
	stats, err := h.uc.Stats(c.Context(), actor)
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusOK, stats)
}

func (h *ReportHandler) AdminStats(c fiber.Ctx) error {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		return err
	}
	stats, err := h.uc.AdminStats(c.Context(), actor)
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusOK, stats)
}

func (h *ReportHandler) Invoice(c fiber.Ctx) error {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "application_id", "application")
	if err != nil {
		return err
	}

	f, err := h.uc.Invoice(c.Context(), actor, id)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, f.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", f.Name))
	return c.Status(fiber.StatusOK).Send(f.Body)
}
