package middleware

import (
	"errors"
	"fmt"

	"jobni/internal/domain/apperr"
	"jobni/internal/observability"
	"jobni/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type ErrorMiddleware struct{}

func NewErrorMiddleware() *ErrorMiddleware {
	return &ErrorMiddleware{}
}

// Middleware turns handler errors and panics into {"detail": ...} bodies.
func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				observability.LoggerFromContext(c.Context()).Error().
					Str("panic", fmt.Sprint(r)).
					Str("path", c.Path()).
					Msg("panic recovered")
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		status, detail := NormalizeError(err)
		if status >= 500 {
			observability.LoggerFromContext(c.Context()).Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("request failed")
		}
		return response.Error(c, status, detail)
	}
}

// NormalizeError maps an error to its status code and the detail safe to
// show the caller. Internal causes never leak.
func NormalizeError(err error) (int, string) {
	if err == nil {
		return fiber.StatusInternalServerError, response.MessageInternalServerError
	}

	if status, ok := statusForKind(err); ok {
		if status >= 500 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError
		}
		detail := apperr.Detail(err)
		if detail == "" {
			detail = response.DefaultMessageForStatus(status)
		}
		return status, detail
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status := fiberErr.Code
		if status <= 0 || status >= 500 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError
		}
		msg := fiberErr.Message
		if msg == "" {
			msg = response.DefaultMessageForStatus(status)
		}
		return status, msg
	}

	return fiber.StatusInternalServerError, response.MessageInternalServerError
}

func statusForKind(err error) (int, bool) {
	switch {
	case errors.Is(err, apperr.ErrInvalid):
		return fiber.StatusBadRequest, true
	case errors.Is(err, apperr.ErrUnauthorized):
		return fiber.StatusUnauthorized, true
	case errors.Is(err, apperr.ErrForbidden):
		return fiber.StatusForbidden, true
	case errors.Is(err, apperr.ErrNotFound):
		return fiber.StatusNotFound, true
	case errors.Is(err, apperr.ErrConflict):
		return fiber.StatusConflict, true
	case errors.Is(err, apperr.ErrInternal):
		return fiber.StatusInternalServerError, true
	default:
		return 0, false
	}
}
