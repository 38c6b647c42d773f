package repository

import (
	"context"

	"jobni/internal/database"
	"jobni/internal/database/postgres"
	"jobni/internal/domain/user"

	"github.com/google/uuid"
)

const userColumns = `id, name, email, password_hash, phone, role, company_name,
	rating::float8, total_ratings, skills, created_at`

type PostgresUserRepository struct {
	db database.Querier
}

func NewPostgresUserRepository(db database.Querier) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) error {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, phone, role, company_name, skills, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Phone, string(u.Role), u.CompanyName, skills, u.CreatedAt,
	)
	if postgres.IsUniqueViolation(err, "users_email_lower_uidx") {
		return user.ErrDuplicateEmail
	}
	return err
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
}

func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, u user.User) error {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	n, err := r.db.Exec(ctx,
		`UPDATE users SET name = $2, phone = $3, company_name = $4, skills = $5 WHERE id = $1`,
		u.ID, u.Name, u.Phone, u.CompanyName, skills,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) List(ctx context.Context) ([]user.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanUser(row database.Row) (user.User, error) {
	var (
		u    user.User
		role string
	)
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &role, &u.CompanyName,
		&u.Rating, &u.TotalRatings, &u.Skills, &u.CreatedAt,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.Role = user.Role(role)
	return u, nil
}
