package report

import (
	"context"

	"github.com/google/uuid"
)

// Scope limits aggregation to one applicant or one employer. The zero value
// aggregates the whole platform.
type Scope struct {
	ApplicantID *uuid.UUID
	EmployerID  *uuid.UUID
}

type ApplicationCounts struct {
	Total     int
	Pending   int
	Accepted  int
	Rejected  int
	Completed int
	// CompletedSalary is the salary sum of the jobs behind completed applications.
	CompletedSalary float64
}

type JobCounts struct {
	Total  int
	Active int
}

type UserCounts struct {
	Total      int
	Employers  int
	JobSeekers int
}

// Repository reads aggregates straight from the lifecycle tables. Nothing is
// cached, so results always reflect committed state.
type Repository interface {
	ApplicationCounts(ctx context.Context, s Scope) (ApplicationCounts, error)
	JobCounts(ctx context.Context, employerID *uuid.UUID) (JobCounts, error)
	UserCounts(ctx context.Context) (UserCounts, error)
}
