package repository

import (
	"context"

	"jobni/internal/database"
	"jobni/internal/database/postgres"
	"jobni/internal/domain/application"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const applicationColumns = `id, job_id, applicant_id, employer_id, message, status, applied_date, updated_at`

type PostgresApplicationRepository struct {
	db database.Querier
}

func NewPostgresApplicationRepository(db database.Querier) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO applications (id, job_id, applicant_id, employer_id, message, status, applied_date, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.JobID, a.ApplicantID, a.EmployerID, a.Message, string(a.Status), a.AppliedDate, a.UpdatedAt,
	)
	if postgres.IsUniqueViolation(err, "applications_active_pair_uidx") {
		return application.ErrDuplicate
	}
	return err
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	return scanApplication(r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id))
}

func (r *PostgresApplicationRepository) Transition(ctx context.Context, id uuid.UUID, from, to application.Status) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE applications SET status = $3, updated_at = now()
		 WHERE id = $1 AND status = $2
		 RETURNING `+applicationColumns,
		id, string(from), string(to),
	)
	a, err := scanApplication(row)
	if err == nil {
		return a, nil
	}
	if err != application.ErrNotFound {
		if postgres.IsUniqueViolation(err, "applications_active_pair_uidx") {
			return application.Application{}, application.ErrStaleStatus
		}
		return application.Application{}, err
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM applications WHERE id = $1)`, id).Scan(&exists); err != nil {
		return application.Application{}, err
	}
	if !exists {
		return application.Application{}, application.ErrNotFound
	}
	return application.Application{}, application.ErrStaleStatus
}

func (r *PostgresApplicationRepository) List(ctx context.Context, f application.ListFilter) ([]application.View, error) {
	query, args, err := listApplicationsQuery(f)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.View, 0)
	for rows.Next() {
		var (
			v      application.View
			status string
		)
		if err := rows.Scan(
			&v.ID, &v.JobID, &v.ApplicantID, &v.EmployerID, &v.Message, &status, &v.AppliedDate, &v.UpdatedAt,
			&v.JobTitle, &v.CompanyName, &v.Salary, &v.ApplicantName, &v.ApplicantEmail, &v.ApplicantPhone,
		); err != nil {
			return nil, err
		}
		v.Status = application.Status(status)
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func listApplicationsQuery(f application.ListFilter) (string, []any, error) {
	ds := pg.From(goqu.T("applications").As("a")).
		Join(goqu.T("jobs").As("j"), goqu.On(goqu.I("j.id").Eq(goqu.I("a.job_id")))).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("a.applicant_id")))).
		Select(
			goqu.I("a.id"), goqu.I("a.job_id"), goqu.I("a.applicant_id"), goqu.I("a.employer_id"),
			goqu.I("a.message"), goqu.I("a.status"), goqu.I("a.applied_date"), goqu.I("a.updated_at"),
			goqu.I("j.title"), goqu.I("j.company_name"), goqu.L("j.salary::float8"),
			goqu.I("u.name"), goqu.I("u.email"), goqu.I("u.phone"),
		).
		Prepared(true)

	if f.ApplicantID != nil {
		ds = ds.Where(goqu.I("a.applicant_id").Eq(f.ApplicantID.String()))
	}
	if f.EmployerID != nil {
		ds = ds.Where(goqu.I("a.employer_id").Eq(f.EmployerID.String()))
	}
	if f.JobID != nil {
		ds = ds.Where(goqu.I("a.job_id").Eq(f.JobID.String()))
	}

	return ds.Order(goqu.I("a.applied_date").Desc(), goqu.I("a.id").Desc()).ToSQL()
}

func scanApplication(row database.Row) (application.Application, error) {
	var (
		a      application.Application
		status string
	)
	if err := row.Scan(&a.ID, &a.JobID, &a.ApplicantID, &a.EmployerID, &a.Message, &status, &a.AppliedDate, &a.UpdatedAt); err != nil {
		if postgres.IsNoRows(err) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	return a, nil
}
