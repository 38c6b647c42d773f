package notification

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeNewApplication    Type = "new_application"
	TypeApplicationUpdate Type = "application_update"
	TypeNewMessage        Type = "new_message"
)

const ListLimit = 100

var ErrNotFound = errors.New("notification not found")

type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Type      Type
	Message   string
	Read      bool
	CreatedAt time.Time
}

type Repository interface {
	Create(ctx context.Context, n Notification) error
	List(ctx context.Context, userID uuid.UUID, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}
