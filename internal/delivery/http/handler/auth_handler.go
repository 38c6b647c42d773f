package handler

import (
	"strings"

	"jobni/internal/delivery/http/dto"
	"jobni/internal/delivery/http/middleware"
	"jobni/internal/domain/apperr"
	"jobni/internal/domain/user"
	"jobni/internal/pkg/response"
	"jobni/internal/usecase"
	ucauth "jobni/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc usecase.AuthUsecase
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)
	r.Get("/me", auth, h.Me)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	usr, tokens, err := h.uc.Register(c.Context(), ucauth.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Phone:       req.Phone,
		Role:        user.Role(strings.TrimSpace(req.Role)),
		CompanyName: req.CompanyName,
		Skills:      req.Skills,
	})
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusOK, authResponse(usr, tokens))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	usr, tokens, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusOK, authResponse(usr, tokens))
}

// Refresh accepts the refresh token in the body or as a bearer credential.
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	var req dto.RefreshRequest
	if len(c.Body()) > 0 {
		if err := bindBody(c, &req); err != nil {
			return err
		}
	}
	tok := strings.TrimSpace(req.RefreshToken)
	if tok == "" {
		bearer, ok := middleware.BearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return apperr.New(apperr.ErrUnauthorized, "Not authenticated")
		}
		tok = bearer
	}

	usr, tokens, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusOK, authResponse(usr, tokens))
}

func (h *AuthHandler) Me(c fiber.Ctx) error {
	tok, _ := middleware.BearerToken(c.Get(fiber.HeaderAuthorization))
	usr, err := h.uc.CurrentUser(c.Context(), tok)
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusOK, dto.NewUserResponse(usr))
}

func authResponse(u user.User, t ucauth.Tokens) dto.AuthResponse {
	return dto.AuthResponse{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    "bearer",
		User:         dto.NewUserResponse(u),
	}
}
