package savedjob

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrAlreadySaved = errors.New("job already saved")
	ErrNotFound     = errors.New("saved job not found")
)

type Repository interface {
	Save(ctx context.Context, userID, jobID uuid.UUID) error
	Delete(ctx context.Context, userID, jobID uuid.UUID) error
	// ListJobIDs returns the user's bookmarks, most recently saved first.
	ListJobIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}
