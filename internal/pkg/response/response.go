package response

import "github.com/gofiber/fiber/v3"

// ErrorBody is the only error shape clients see.
type ErrorBody struct {
	Detail string `json:"detail"`
}

type MessageBody struct {
	Message string `json:"message"`
}

const (
	MessageBadRequest          = "Bad request"
	MessageUnauthorized        = "Not authenticated"
	MessageForbidden           = "Not authorized"
	MessageNotFound            = "Not found"
	MessageConflict            = "Conflict"
	MessageUnprocessableEntity = "Unprocessable entity"
	MessageInternalServerError = "Internal server error"
	MessageError               = "Error"
)

// JSON writes data as the raw response body.
func JSON(c fiber.Ctx, status int, data any) error {
	return c.Status(normalizeStatus(status)).JSON(data)
}

func Message(c fiber.Ctx, status int, message string) error {
	return c.Status(normalizeStatus(status)).JSON(MessageBody{Message: message})
}

func Error(c fiber.Ctx, status int, detail string) error {
	st := normalizeStatus(status)
	if detail == "" {
		detail = DefaultMessageForStatus(st)
	}
	return c.Status(st).JSON(ErrorBody{Detail: detail})
}

func normalizeStatus(status int) int {
	if status < 100 || status > 599 {
		return fiber.StatusInternalServerError
	}
	return status
}

func DefaultMessageForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusUnauthorized:
		return MessageUnauthorized
	case fiber.StatusForbidden:
		return MessageForbidden
	case fiber.StatusNotFound:
		return MessageNotFound
	case fiber.StatusConflict:
		return MessageConflict
	case fiber.StatusUnprocessableEntity:
		return MessageUnprocessableEntity
	default:
		if status >= 500 {
			return MessageInternalServerError
		}
		return MessageError
	}
}
