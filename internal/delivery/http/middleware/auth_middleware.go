package middleware

import (
	"context"
	"strings"

	"jobni/internal/domain/apperr"
	"jobni/internal/domain/user"

	"github.com/gofiber/fiber/v3"
)

const CtxActorKey = "actor"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (user.Actor, error)
}

type AuthMiddleware struct {
	auth Authenticator
}

func NewAuthMiddleware(auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// Middleware resolves the bearer credential to an Actor and stores it in
// Locals for the handlers behind it.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := BearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return apperr.New(apperr.ErrUnauthorized, "Not authenticated")
		}

		actor, err := m.auth.Authenticate(c.Context(), token)
		if err != nil {
			return err
		}

		c.Locals(CtxActorKey, actor)
		return c.Next()
	}
}

// ActorFrom returns the actor stored by AuthMiddleware.
func ActorFrom(c fiber.Ctx) (user.Actor, error) {
	actor, ok := c.Locals(CtxActorKey).(user.Actor)
	if !ok {
		return user.Actor{}, apperr.New(apperr.ErrUnauthorized, "Not authenticated")
	}
	return actor, nil
}

func BearerToken(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
