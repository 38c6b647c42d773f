package handler

import (
	"jobni/internal/pkg/response"
	"jobni/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	uc usecase.HealthUsecase
}

func NewHealthHandler(uc usecase.HealthUsecase) *HealthHandler {
	return &HealthHandler{uc: uc}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.GetStatus)
}

func (h *HealthHandler) GetStatus(c fiber.Ctx) error {
	st := h.uc.GetStatus(c.Context())
	status := fiber.StatusOK
	if !st.DatabaseHealthy {
		status = fiber.StatusServiceUnavailable
	}
	return response.JSON(c, status, st)
}
