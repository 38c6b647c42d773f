package handler

import (
	"jobni/internal/delivery/http/dto"
	"jobni/internal/delivery/http/middleware"
	"jobni/internal/domain/apperr"
	"jobni/internal/pkg/response"
	"jobni/internal/usecase"
	useruc "jobni/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Put("/auth/me", auth, h.UpdateMe)
	r.Get("/admin/users", auth, h.ListUsers)
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if req.Name == nil && req.Phone == nil && req.CompanyName == nil && req.Skills == nil {
		return apperr.New(apperr.ErrInvalid, "Nothing to update")
	}

	usr, err := h.uc.UpdateProfile(c.Context(), actor, useruc.UpdateProfileInput{
		Name:        req.Name,
		Phone:       req.Phone,
		CompanyName: req.CompanyName,
		Skills:      req.Skills,
	})
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusOK, dto.NewUserResponse(usr))
}

func (h *UserHandler) ListUsers(c fiber.Ctx) error {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		return err
	}

	users, err := h.uc.ListUsers(c.Context(), actor)
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusOK, dto.NewUserResponses(users))
}
