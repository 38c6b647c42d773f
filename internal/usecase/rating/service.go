package rating

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobni/internal/domain/apperr"
	"jobni/internal/domain/application"
	"jobni/internal/domain/rating"
	"jobni/internal/domain/store"
	"jobni/internal/domain/user"

	"github.com/google/uuid"
)

type RateInput struct {
	JobID   uuid.UUID
	RatedID uuid.UUID
	Score   float64
	Comment string
}

type Service struct {
	store store.Store
	now   func() time.Time
}

func NewService(st store.Store) *Service {
	return &Service{store: st, now: time.Now}
}

// Rate records a score from one party of a completed engagement for the
// other, and refreshes the rated user's average in the same transaction.
func (s *Service) Rate(ctx context.Context, actor user.Actor, in RateInput) (rating.Rating, error) {
	if in.Score < rating.Min || in.Score > rating.Max {
		return rating.Rating{}, apperr.New(apperr.ErrInvalid, "Rating must be between 1 and 5")
	}
	if in.RatedID == actor.ID {
		return rating.Rating{}, apperr.New(apperr.ErrInvalid, "Cannot rate yourself")
	}

	r := rating.Rating{
		ID:        uuid.New(),
		JobID:     in.JobID,
		RaterID:   actor.ID,
		RatedID:   in.RatedID,
		Score:     in.Score,
		CreatedAt: s.now().UTC(),
	}
	if c := strings.TrimSpace(in.Comment); c != "" {
		r.Comment = &c
	}

	err := s.store.InTx(ctx, func(ctx context.Context, tx store.Repositories) error {
		if err := requireCompletedEngagement(ctx, tx, actor.ID, in.RatedID, in.JobID); err != nil {
			return err
		}
		if err := tx.Ratings().Create(ctx, r); err != nil {
			if errors.Is(err, rating.ErrDuplicate) {
				return apperr.Wrap(apperr.ErrConflict, "Already rated this user for this job", err)
			}
			return apperr.Internal(err)
		}
		if err := tx.Ratings().Recompute(ctx, in.RatedID); err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
	if err != nil {
		return rating.Rating{}, err
	}
	return r, nil
}

func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]rating.Rating, error) {
	out, err := s.store.Ratings().ListForUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

// requireCompletedEngagement checks that rater and rated are the two sides
// of a completed application for the job.
func requireCompletedEngagement(ctx context.Context, tx store.Repositories, raterID, ratedID, jobID uuid.UUID) error {
	views, err := tx.Applications().List(ctx, application.ListFilter{JobID: &jobID})
	if err != nil {
		return apperr.Internal(err)
	}

	found := false
	for _, v := range views {
		a := v.Application
		involved := (a.ApplicantID == raterID && a.EmployerID == ratedID) ||
			(a.EmployerID == raterID && a.ApplicantID == ratedID)
		if !involved {
			continue
		}
		found = true
		if a.Status == application.StatusCompleted {
			return nil
		}
	}
	if !found {
		return apperr.New(apperr.ErrNotFound, "Application not found")
	}
	return apperr.New(apperr.ErrInvalid, "Can only rate completed jobs")
}
