package savedjob

import (
	"context"
	"errors"

	"jobni/internal/domain/apperr"
	"jobni/internal/domain/authz"
	"jobni/internal/domain/job"
	"jobni/internal/domain/savedjob"
	"jobni/internal/domain/user"

	"github.com/google/uuid"
)

type Service struct {
	saved savedjob.Repository
	jobs  job.Repository
}

func NewService(saved savedjob.Repository, jobs job.Repository) *Service {
	return &Service{saved: saved, jobs: jobs}
}

func (s *Service) Save(ctx context.Context, actor user.Actor, jobID uuid.UUID) error {
	if err := authz.RequireRole(actor, "Only job seekers can save jobs", user.RoleJobSeeker); err != nil {
		return err
	}
	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return apperr.New(apperr.ErrNotFound, "Job not found")
		}
		return apperr.Internal(err)
	}

	if err := s.saved.Save(ctx, actor.ID, jobID); err != nil {
		if errors.Is(err, savedjob.ErrAlreadySaved) {
			return apperr.New(apperr.ErrConflict, "Job already saved")
		}
		return apperr.Internal(err)
	}
	return nil
}

func (s *Service) Unsave(ctx context.Context, actor user.Actor, jobID uuid.UUID) error {
	if err := s.saved.Delete(ctx, actor.ID, jobID); err != nil {
		if errors.Is(err, savedjob.ErrNotFound) {
			return apperr.New(apperr.ErrNotFound, "Saved job not found")
		}
		return apperr.Internal(err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, actor user.Actor) ([]uuid.UUID, error) {
	ids, err := s.saved.ListJobIDs(ctx, actor.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return ids, nil
}
