package handler

import (
	"strconv"
	"strings"

	"jobni/internal/domain/apperr"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func bindBody(c fiber.Ctx, out any) error {
	if err := c.Bind().Body(out); err != nil {
		return apperr.Wrap(apperr.ErrInvalid, "Invalid request body", err)
	}
	return nil
}

func uuidParam(c fiber.Ctx, name, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, apperr.New(apperr.ErrInvalid, "Invalid "+what+" id")
	}
	return id, nil
}

func parseUUID(raw, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, apperr.New(apperr.ErrInvalid, "Invalid "+what+" id")
	}
	return id, nil
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperr.New(apperr.ErrInvalid, key+" must be an integer")
	}
	return v, nil
}
