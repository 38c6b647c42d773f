// Package usecase lists the application services the HTTP layer depends on.
// Implementations live in the subpackages.
package usecase

import (
	"context"

	"jobni/internal/domain/application"
	"jobni/internal/domain/conversation"
	"jobni/internal/domain/job"
	"jobni/internal/domain/notification"
	"jobni/internal/domain/rating"
	"jobni/internal/domain/user"
	ucapplication "jobni/internal/usecase/application"
	ucauth "jobni/internal/usecase/auth"
	ucconversation "jobni/internal/usecase/conversation"
	ucjob "jobni/internal/usecase/job"
	ucnotification "jobni/internal/usecase/notification"
	ucrating "jobni/internal/usecase/rating"
	ucreport "jobni/internal/usecase/report"
	ucsavedjob "jobni/internal/usecase/savedjob"
	ucuser "jobni/internal/usecase/user"

	"github.com/google/uuid"
)

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (user.User, ucauth.Tokens, error)
	Login(ctx context.Context, in ucauth.LoginInput) (user.User, ucauth.Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (user.User, ucauth.Tokens, error)
	Authenticate(ctx context.Context, accessToken string) (user.Actor, error)
	CurrentUser(ctx context.Context, accessToken string) (user.User, error)
}

type UserUsecase interface {
	UpdateProfile(ctx context.Context, actor user.Actor, in ucuser.UpdateProfileInput) (user.User, error)
	ListUsers(ctx context.Context, actor user.Actor) ([]user.User, error)
}

type JobUsecase interface {
	Create(ctx context.Context, actor user.Actor, in ucjob.Fields) (job.Job, error)
	List(ctx context.Context, in ucjob.ListInput) ([]job.Job, error)
	Get(ctx context.Context, id uuid.UUID) (job.Job, error)
	Update(ctx context.Context, actor user.Actor, id uuid.UUID, in ucjob.UpdateInput) (job.Job, error)
	Close(ctx context.Context, actor user.Actor, id uuid.UUID) (job.Job, error)
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, actor user.Actor, in ucapplication.ApplyInput) (application.Application, error)
	UpdateStatus(ctx context.Context, actor user.Actor, id uuid.UUID, status string) (application.Application, error)
	List(ctx context.Context, actor user.Actor) ([]application.View, error)
	ListForJob(ctx context.Context, actor user.Actor, jobID uuid.UUID) ([]application.View, error)
}

type ConversationUsecase interface {
	List(ctx context.Context, actor user.Actor) ([]conversation.Summary, error)
	Post(ctx context.Context, actor user.Actor, conversationID uuid.UUID, text string) (conversation.Message, error)
	ListMessages(ctx context.Context, actor user.Actor, conversationID uuid.UUID, after *uuid.UUID) ([]conversation.Message, error)
	CanWatch(ctx context.Context, actor user.Actor, conversationID uuid.UUID) error
}

type ReportUsecase interface {
	Stats(ctx context.Context, actor user.Actor) (ucreport.Stats, error)
	AdminStats(ctx context.Context, actor user.Actor) (ucreport.Stats, error)
	Invoice(ctx context.Context, actor user.Actor, applicationID uuid.UUID) (ucreport.File, error)
}

type RatingUsecase interface {
	Rate(ctx context.Context, actor user.Actor, in ucrating.RateInput) (rating.Rating, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]rating.Rating, error)
}

type SavedJobUsecase interface {
	Save(ctx context.Context, actor user.Actor, jobID uuid.UUID) error
	Unsave(ctx context.Context, actor user.Actor, jobID uuid.UUID) error
	List(ctx context.Context, actor user.Actor) ([]uuid.UUID, error)
}

type NotificationUsecase interface {
	List(ctx context.Context, actor user.Actor) ([]notification.Notification, error)
	MarkRead(ctx context.Context, actor user.Actor, id uuid.UUID) error
	MarkAllRead(ctx context.Context, actor user.Actor) (int64, error)
}

var (
	_ AuthUsecase         = (*ucauth.Service)(nil)
	_ UserUsecase         = (*ucuser.Service)(nil)
	_ JobUsecase          = (*ucjob.Service)(nil)
	_ ApplicationUsecase  = (*ucapplication.Service)(nil)
	_ ConversationUsecase = (*ucconversation.Service)(nil)
	_ ReportUsecase       = (*ucreport.Service)(nil)
	_ RatingUsecase       = (*ucrating.Service)(nil)
	_ SavedJobUsecase     = (*ucsavedjob.Service)(nil)
	_ NotificationUsecase = (*ucnotification.Service)(nil)
	_ HealthUsecase       = (*Health)(nil)
)
