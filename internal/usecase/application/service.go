package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobni/internal/domain/apperr"
	"jobni/internal/domain/application"
	"jobni/internal/domain/authz"
	"jobni/internal/domain/conversation"
	"jobni/internal/domain/job"
	"jobni/internal/domain/notification"
	"jobni/internal/domain/store"
	"jobni/internal/domain/user"
	"jobni/internal/observability"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// MessagePublisher fans a committed message out to live watchers.
type MessagePublisher interface {
	PublishMessage(ctx context.Context, m conversation.Message) error
}

const acceptedNotice = "Application for %q accepted. Use this conversation to arrange the work."

type ApplyInput struct {
	JobID   uuid.UUID
	Message string
}

type Service struct {
	store     store.Store
	publisher MessagePublisher
	logger    zerolog.Logger
	now       func() time.Time
}

func NewService(st store.Store, publisher MessagePublisher) *Service {
	return &Service{
		store:     st,
		publisher: publisher,
		logger:    log.With().Str("component", "lifecycle").Logger(),
		now:       time.Now,
	}
}

func (s *Service) Apply(ctx context.Context, actor user.Actor, in ApplyInput) (_ application.Application, err error) {
	ctx, span := observability.StartSpan(ctx, "application.apply",
		trace.WithAttributes(attribute.String("job.id", in.JobID.String())))
	defer func() { observability.EndSpan(span, err) }()

	if err := authz.RequireRole(actor, "Only job seekers can apply", user.RoleJobSeeker); err != nil {
		return application.Application{}, err
	}

	now := s.now().UTC()
	a := application.Application{
		ID:          uuid.New(),
		JobID:       in.JobID,
		ApplicantID: actor.ID,
		Status:      application.StatusPending,
		AppliedDate: now,
		UpdatedAt:   now,
	}
	if msg := strings.TrimSpace(in.Message); msg != "" {
		a.Message = &msg
	}

	err = s.store.InTx(ctx, func(ctx context.Context, tx store.Repositories) error {
		j, err := tx.Jobs().GetByID(ctx, in.JobID)
		if err != nil {
			if errors.Is(err, job.ErrNotFound) {
				return apperr.New(apperr.ErrNotFound, "Job not found")
			}
			return apperr.Internal(err)
		}
		if j.Status != job.StatusActive {
			return apperr.New(apperr.ErrNotFound, "Job not found")
		}
		a.EmployerID = j.EmployerID

		if err := tx.Applications().Create(ctx, a); err != nil {
			if errors.Is(err, application.ErrDuplicate) {
				return apperr.Wrap(apperr.ErrConflict, "Already applied to this job", err)
			}
			return apperr.Internal(err)
		}

		applicant, err := tx.Users().GetByID(ctx, actor.ID)
		if err != nil && !errors.Is(err, user.ErrNotFound) {
			return apperr.Internal(err)
		}
		return notify(ctx, tx, j.EmployerID, notification.TypeNewApplication,
			fmt.Sprintf("%s applied to %s", displayName(applicant), j.Title), now)
	})
	if err != nil {
		return application.Application{}, err
	}
	return a, nil
}

// Decide settles a pending application. Accepting also opens the job's
// conversation with the applicant, in the same transaction.
func (s *Service) Decide(ctx context.Context, actor user.Actor, id uuid.UUID, decision application.Status) (_ application.Application, err error) {
	ctx, span := observability.StartSpan(ctx, "application.decide",
		trace.WithAttributes(
			attribute.String("application.id", id.String()),
			attribute.String("application.decision", string(decision)),
		))
	defer func() { observability.EndSpan(span, err) }()

	if decision != application.StatusAccepted && decision != application.StatusRejected {
		return application.Application{}, apperr.New(apperr.ErrInvalid, "Decision must be accepted or rejected")
	}

	var (
		updated application.Application
		posted  []conversation.Message
	)
	err = s.store.InTx(ctx, func(ctx context.Context, tx store.Repositories) error {
		posted = nil
		a, err := s.loadOwned(ctx, tx, actor, id)
		if err != nil {
			return err
		}
		if a.Status != application.StatusPending {
			return apperr.New(apperr.ErrConflict, fmt.Sprintf("Application is already %s", a.Status))
		}

		updated, err = transition(ctx, tx, id, application.StatusPending, decision)
		if err != nil {
			return err
		}

		j, err := tx.Jobs().GetByID(ctx, a.JobID)
		if err != nil {
			return apperr.Internal(err)
		}

		if decision == application.StatusAccepted {
			conv, created, err := tx.Conversations().Ensure(ctx, conversation.Conversation{
				ID:            uuid.New(),
				JobID:         a.JobID,
				EmployerID:    a.EmployerID,
				CandidateID:   a.ApplicantID,
				ApplicationID: &a.ID,
				CreatedAt:     s.now().UTC(),
			})
			if err != nil {
				return apperr.Internal(fmt.Errorf("ensure conversation: %w", err))
			}
			if created {
				m, err := tx.Conversations().AppendMessage(ctx, conversation.Message{
					ID:             uuid.New(),
					ConversationID: conv.ID,
					Text:           fmt.Sprintf(acceptedNotice, j.Title),
				})
				if err != nil {
					return apperr.Internal(fmt.Errorf("post acceptance notice: %w", err))
				}
				posted = append(posted, m)
			}
		}

		return notify(ctx, tx, a.ApplicantID, notification.TypeApplicationUpdate,
			fmt.Sprintf("Your application for %s was %s", j.Title, decision), s.now().UTC())
	})
	if err != nil {
		return application.Application{}, err
	}

	s.publish(ctx, posted)
	return updated, nil
}

func (s *Service) Complete(ctx context.Context, actor user.Actor, id uuid.UUID) (_ application.Application, err error) {
	ctx, span := observability.StartSpan(ctx, "application.complete",
		trace.WithAttributes(attribute.String("application.id", id.String())))
	defer func() { observability.EndSpan(span, err) }()

	var updated application.Application
	err = s.store.InTx(ctx, func(ctx context.Context, tx store.Repositories) error {
		a, err := s.loadOwned(ctx, tx, actor, id)
		if err != nil {
			return err
		}
		if a.Status != application.StatusAccepted {
			return apperr.New(apperr.ErrConflict, "Only accepted applications can be completed")
		}

		updated, err = transition(ctx, tx, id, application.StatusAccepted, application.StatusCompleted)
		if err != nil {
			return err
		}

		j, err := tx.Jobs().GetByID(ctx, a.JobID)
		if err != nil {
			return apperr.Internal(err)
		}
		return notify(ctx, tx, a.ApplicantID, notification.TypeApplicationUpdate,
			fmt.Sprintf("Your work on %s was marked completed", j.Title), s.now().UTC())
	})
	if err != nil {
		return application.Application{}, err
	}
	return updated, nil
}

// UpdateStatus routes a raw target status to the matching transition.
func (s *Service) UpdateStatus(ctx context.Context, actor user.Actor, id uuid.UUID, status string) (application.Application, error) {
	switch target := application.Status(strings.TrimSpace(status)); target {
	case application.StatusAccepted, application.StatusRejected:
		return s.Decide(ctx, actor, id, target)
	case application.StatusCompleted:
		return s.Complete(ctx, actor, id)
	default:
		return application.Application{}, apperr.New(apperr.ErrInvalid, "Status must be accepted, rejected or completed")
	}
}

func (s *Service) List(ctx context.Context, actor user.Actor) ([]application.View, error) {
	var f application.ListFilter
	switch actor.Role {
	case user.RoleJobSeeker:
		f.ApplicantID = &actor.ID
	case user.RoleEmployer:
		f.EmployerID = &actor.ID
	case user.RoleAdmin:
	default:
		return nil, apperr.New(apperr.ErrForbidden, "Not authorized")
	}

	views, err := s.store.Applications().List(ctx, f)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return views, nil
}

func (s *Service) ListForJob(ctx context.Context, actor user.Actor, jobID uuid.UUID) ([]application.View, error) {
	j, err := s.store.Jobs().GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return nil, apperr.New(apperr.ErrNotFound, "Job not found")
		}
		return nil, apperr.Internal(err)
	}
	if err := authz.RequireOwner(actor, j.EmployerID, "Not authorized"); err != nil {
		return nil, err
	}

	views, err := s.store.Applications().List(ctx, application.ListFilter{JobID: &jobID})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return views, nil
}

func (s *Service) loadOwned(ctx context.Context, tx store.Repositories, actor user.Actor, id uuid.UUID) (application.Application, error) {
	a, err := tx.Applications().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, apperr.New(apperr.ErrNotFound, "Application not found")
		}
		return application.Application{}, apperr.Internal(err)
	}
	if err := authz.RequireOwner(actor, a.EmployerID, "Not authorized"); err != nil {
		return application.Application{}, err
	}
	return a, nil
}

func (s *Service) publish(ctx context.Context, msgs []conversation.Message) {
	if s.publisher == nil {
		return
	}
	for _, m := range msgs {
		if err := s.publisher.PublishMessage(ctx, m); err != nil {
			s.logger.Warn().Err(err).
				Str("conversation_id", m.ConversationID.String()).
				Msg("publish message failed")
		}
	}
}

func transition(ctx context.Context, tx store.Repositories, id uuid.UUID, from, to application.Status) (application.Application, error) {
	a, err := tx.Applications().Transition(ctx, id, from, to)
	switch {
	case err == nil:
		return a, nil
	case errors.Is(err, application.ErrStaleStatus):
		return application.Application{}, apperr.Wrap(apperr.ErrConflict, "Application status changed, reload and retry", err)
	case errors.Is(err, application.ErrNotFound):
		return application.Application{}, apperr.New(apperr.ErrNotFound, "Application not found")
	default:
		return application.Application{}, apperr.Internal(err)
	}
}

func notify(ctx context.Context, tx store.Repositories, userID uuid.UUID, typ notification.Type, msg string, at time.Time) error {
	err := tx.Notifications().Create(ctx, notification.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      typ,
		Message:   msg,
		CreatedAt: at,
	})
	if err != nil {
		return apperr.Internal(fmt.Errorf("create notification: %w", err))
	}
	return nil
}

func displayName(u user.User) string {
	if u.Name == "" {
		return "A candidate"
	}
	return u.Name
}
