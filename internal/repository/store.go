package repository

import (
	"context"
	"errors"
	"fmt"

	"jobni/internal/database"
	"jobni/internal/domain/application"
	"jobni/internal/domain/conversation"
	"jobni/internal/domain/job"
	"jobni/internal/domain/notification"
	"jobni/internal/domain/rating"
	"jobni/internal/domain/report"
	"jobni/internal/domain/savedjob"
	"jobni/internal/domain/store"
	"jobni/internal/domain/user"
)

type repositories struct {
	users         *PostgresUserRepository
	jobs          *PostgresJobRepository
	applications  *PostgresApplicationRepository
	conversations *PostgresConversationRepository
	notifications *PostgresNotificationRepository
	ratings       *PostgresRatingRepository
	savedJobs     *PostgresSavedJobRepository
	reports       *PostgresReportRepository
}

func newRepositories(q database.Querier) repositories {
	return repositories{
		users:         NewPostgresUserRepository(q),
		jobs:          NewPostgresJobRepository(q),
		applications:  NewPostgresApplicationRepository(q),
		conversations: NewPostgresConversationRepository(q),
		notifications: NewPostgresNotificationRepository(q),
		ratings:       NewPostgresRatingRepository(q),
		savedJobs:     NewPostgresSavedJobRepository(q),
		reports:       NewPostgresReportRepository(q),
	}
}

func (r repositories) Users() user.Repository                 { return r.users }
func (r repositories) Jobs() job.Repository                   { return r.jobs }
func (r repositories) Applications() application.Repository   { return r.applications }
func (r repositories) Conversations() conversation.Repository { return r.conversations }
func (r repositories) Notifications() notification.Repository { return r.notifications }
func (r repositories) Ratings() rating.Repository             { return r.ratings }
func (r repositories) SavedJobs() savedjob.Repository         { return r.savedJobs }
func (r repositories) Reports() report.Repository             { return r.reports }

// PostgresStore serves reads from the pool and runs InTx callbacks on a
// dedicated transaction.
type PostgresStore struct {
	repositories
	db database.DB
}

var _ store.Store = (*PostgresStore)(nil)

func NewPostgresStore(db database.DB) *PostgresStore {
	return &PostgresStore{repositories: newRepositories(db), db: db}
}

// DB exposes the underlying handle for maintenance queries.
func (s *PostgresStore) DB() database.DB {
	return s.db
}

func (s *PostgresStore) InTx(ctx context.Context, fn func(ctx context.Context, tx store.Repositories) error) error {
	if s == nil || s.db == nil {
		return errors.New("nil store")
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if err := fn(ctx, newRepositories(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
