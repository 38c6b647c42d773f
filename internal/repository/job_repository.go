package repository

import (
	"context"
	"strings"

	"jobni/internal/database"
	"jobni/internal/database/postgres"
	"jobni/internal/domain/job"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
)

var pg = goqu.Dialect("postgres")

const jobColumns = `id, employer_id, title, description, company_name, location, category,
	duration_type, duration_value, salary::float8, requirements, status, deadline, views,
	posted_date, updated_at`

type PostgresJobRepository struct {
	db database.Querier
}

func NewPostgresJobRepository(db database.Querier) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (id, employer_id, title, description, company_name, location, category,
		   duration_type, duration_value, salary, requirements, status, deadline, posted_date, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		j.ID, j.EmployerID, j.Title, j.Description, j.CompanyName, j.Location, string(j.Category),
		string(j.DurationType), j.DurationValue, j.Salary, nonNilStrings(j.Requirements), string(j.Status),
		j.Deadline, j.PostedDate, j.UpdatedAt,
	)
	return err
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	return scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
}

func (r *PostgresJobRepository) Update(ctx context.Context, j job.Job) error {
	n, err := r.db.Exec(ctx,
		`UPDATE jobs SET title = $2, description = $3, company_name = $4, location = $5, category = $6,
		   duration_type = $7, duration_value = $8, salary = $9, requirements = $10, status = $11,
		   deadline = $12, updated_at = now()
		 WHERE id = $1`,
		j.ID, j.Title, j.Description, j.CompanyName, j.Location, string(j.Category),
		string(j.DurationType), j.DurationValue, j.Salary, nonNilStrings(j.Requirements), string(j.Status),
		j.Deadline,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *PostgresJobRepository) SetStatus(ctx context.Context, id uuid.UUID, status job.Status) error {
	n, err := r.db.Exec(ctx, `UPDATE jobs SET status = $2, updated_at = now() WHERE id = $1`, id, string(status))
	if err != nil {
		return err
	}
	if n == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *PostgresJobRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `UPDATE jobs SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *PostgresJobRepository) List(ctx context.Context, f job.Filter) ([]job.Job, error) {
	query, args, err := listJobsQuery(f)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func listJobsQuery(f job.Filter) (string, []any, error) {
	ds := pg.From("jobs").Select(goqu.L(jobColumns)).Prepared(true)

	if f.Status != "" {
		ds = ds.Where(goqu.C("status").Eq(string(f.Status)))
	}
	if f.Category != "" {
		ds = ds.Where(goqu.C("category").Eq(string(f.Category)))
	}
	if f.DurationType != "" {
		ds = ds.Where(goqu.C("duration_type").Eq(string(f.DurationType)))
	}
	if f.EmployerID != nil {
		ds = ds.Where(goqu.C("employer_id").Eq(f.EmployerID.String()))
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		ds = ds.Where(goqu.C("location").ILike(containsPattern(loc)))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		p := containsPattern(s)
		ds = ds.Where(goqu.Or(
			goqu.C("title").ILike(p),
			goqu.C("description").ILike(p),
			goqu.C("company_name").ILike(p),
		))
	}

	ds = ds.Order(goqu.C("posted_date").Desc(), goqu.C("id").Desc())
	if f.Limit > 0 {
		ds = ds.Limit(uint(f.Limit))
	}
	if f.Offset > 0 {
		ds = ds.Offset(uint(f.Offset))
	}

	return ds.ToSQL()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern matches s literally anywhere in the column.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func scanJob(row database.Row) (job.Job, error) {
	var (
		j                          job.Job
		category, duration, status string
	)
	err := row.Scan(
		&j.ID, &j.EmployerID, &j.Title, &j.Description, &j.CompanyName, &j.Location, &category,
		&duration, &j.DurationValue, &j.Salary, &j.Requirements, &status, &j.Deadline, &j.Views,
		&j.PostedDate, &j.UpdatedAt,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	j.Category = job.Category(category)
	j.DurationType = job.DurationType(duration)
	j.Status = job.Status(status)
	return j, nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
