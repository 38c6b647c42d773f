package job

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("job not found")

type Repository interface {
	Create(ctx context.Context, j Job) error
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	Update(ctx context.Context, j Job) error
	SetStatus(ctx context.Context, id uuid.UUID, status Status) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f Filter) ([]Job, error)
}
