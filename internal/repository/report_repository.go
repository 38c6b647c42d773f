package repository

import (
	"context"

	"jobni/internal/database"
	"jobni/internal/domain/report"

	"github.com/google/uuid"
)

type PostgresReportRepository struct {
	db database.Querier
}

func NewPostgresReportRepository(db database.Querier) *PostgresReportRepository {
	return &PostgresReportRepository{db: db}
}

// ApplicationCounts aggregates in one statement so the per-status counts and
// the earnings sum come from the same snapshot.
func (r *PostgresReportRepository) ApplicationCounts(ctx context.Context, s report.Scope) (report.ApplicationCounts, error) {
	var c report.ApplicationCounts
	err := r.db.QueryRow(ctx,
		`SELECT
		     count(*),
		     count(*) FILTER (WHERE a.status = 'pending'),
		     count(*) FILTER (WHERE a.status = 'accepted'),
		     count(*) FILTER (WHERE a.status = 'rejected'),
		     count(*) FILTER (WHERE a.status = 'completed'),
		     COALESCE(sum(j.salary) FILTER (WHERE a.status = 'completed'), 0)::float8
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 WHERE ($1::uuid IS NULL OR a.applicant_id = $1)
		   AND ($2::uuid IS NULL OR a.employer_id = $2)`,
		s.ApplicantID, s.EmployerID,
	).Scan(&c.Total, &c.Pending, &c.Accepted, &c.Rejected, &c.Completed, &c.CompletedSalary)
	return c, err
}

func (r *PostgresReportRepository) JobCounts(ctx context.Context, employerID *uuid.UUID) (report.JobCounts, error) {
	var c report.JobCounts
	err := r.db.QueryRow(ctx,
		`SELECT count(*), count(*) FILTER (WHERE status = 'active')
		 FROM jobs
		 WHERE ($1::uuid IS NULL OR employer_id = $1)`,
		employerID,
	).Scan(&c.Total, &c.Active)
	return c, err
}

func (r *PostgresReportRepository) UserCounts(ctx context.Context) (report.UserCounts, error) {
	var c report.UserCounts
	err := r.db.QueryRow(ctx,
		`SELECT count(*),
		        count(*) FILTER (WHERE role = 'employer'),
		        count(*) FILTER (WHERE role = 'job_seeker')
		 FROM users`,
	).Scan(&c.Total, &c.Employers, &c.JobSeekers)
	return c, err
}
