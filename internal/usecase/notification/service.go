package notification

import (
	"context"
	"errors"

	"jobni/internal/domain/apperr"
	"jobni/internal/domain/notification"
	"jobni/internal/domain/user"

	"github.com/google/uuid"
)

type Service struct {
	notifications notification.Repository
}

func NewService(repo notification.Repository) *Service {
	return &Service{notifications: repo}
}

// List returns the caller's most recent notifications, newest first.
func (s *Service) List(ctx context.Context, actor user.Actor) ([]notification.Notification, error) {
	out, err := s.notifications.List(ctx, actor.ID, notification.ListLimit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *Service) MarkRead(ctx context.Context, actor user.Actor, id uuid.UUID) error {
	if err := s.notifications.MarkRead(ctx, actor.ID, id); err != nil {
		if errors.Is(err, notification.ErrNotFound) {
			return apperr.New(apperr.ErrNotFound, "Notification not found")
		}
		return apperr.Internal(err)
	}
	return nil
}

func (s *Service) MarkAllRead(ctx context.Context, actor user.Actor) (int64, error) {
	n, err := s.notifications.MarkAllRead(ctx, actor.ID)
	if err != nil {
		return 0, apperr.Internal(err)
	}
	return n, nil
}
