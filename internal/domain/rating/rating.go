package rating

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	Min = 1.0
	Max = 5.0
)

var ErrDuplicate = errors.New("rating already submitted")

type Rating struct {
	ID        uuid.UUID
	JobID     uuid.UUID
	RaterID   uuid.UUID
	RatedID   uuid.UUID
	Score     float64
	Comment   *string
	CreatedAt time.Time
}

type Repository interface {
	Create(ctx context.Context, r Rating) error
	ListForUser(ctx context.Context, ratedID uuid.UUID) ([]Rating, error)
	// Recompute refreshes users.rating and users.total_ratings for ratedID
	// from the ratings table.
	Recompute(ctx context.Context, ratedID uuid.UUID) error
}
