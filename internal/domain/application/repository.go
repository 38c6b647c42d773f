package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("application not found")
	// ErrDuplicate is returned by Create when the applicant already holds a
	// pending or accepted application for the job.
	ErrDuplicate = errors.New("active application already exists")
	// ErrStaleStatus is returned by Transition when the row is no longer in
	// the expected source status.
	ErrStaleStatus = errors.New("application status changed")
)

type Repository interface {
	Create(ctx context.Context, a Application) error
	GetByID(ctx context.Context, id uuid.UUID) (Application, error)
	// Transition moves id from -> to atomically and returns the updated row.
	Transition(ctx context.Context, id uuid.UUID, from, to Status) (Application, error)
	List(ctx context.Context, f ListFilter) ([]View, error)
}
