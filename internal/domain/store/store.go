// Package store groups the repositories behind one unit of work so that a
// lifecycle operation can touch several tables atomically.
package store

import (
	"context"

	"jobni/internal/domain/application"
	"jobni/internal/domain/conversation"
	"jobni/internal/domain/job"
	"jobni/internal/domain/notification"
	"jobni/internal/domain/rating"
	"jobni/internal/domain/report"
	"jobni/internal/domain/savedjob"
	"jobni/internal/domain/user"
)

type Repositories interface {
	Users() user.Repository
	Jobs() job.Repository
	Applications() application.Repository
	Conversations() conversation.Repository
	Notifications() notification.Repository
	Ratings() rating.Repository
	SavedJobs() savedjob.Repository
	Reports() report.Repository
}

type Store interface {
	Repositories

	// InTx runs fn against repositories bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(ctx context.Context, tx Repositories) error) error
}
