package repository

import (
	"context"

	"jobni/internal/database"
	"jobni/internal/domain/savedjob"

	"github.com/google/uuid"
)

type PostgresSavedJobRepository struct {
	db database.Querier
}

func NewPostgresSavedJobRepository(db database.Querier) *PostgresSavedJobRepository {
	return &PostgresSavedJobRepository{db: db}
}

func (r *PostgresSavedJobRepository) Save(ctx context.Context, userID, jobID uuid.UUID) error {
	n, err := r.db.Exec(ctx,
		`INSERT INTO saved_jobs (user_id, job_id) VALUES ($1, $2) ON CONFLICT (user_id, job_id) DO NOTHING`,
		userID, jobID,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return savedjob.ErrAlreadySaved
	}
	return nil
}

func (r *PostgresSavedJobRepository) Delete(ctx context.Context, userID, jobID uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM saved_jobs WHERE user_id = $1 AND job_id = $2`, userID, jobID)
	if err != nil {
		return err
	}
	if n == 0 {
		return savedjob.ErrNotFound
	}
	return nil
}

func (r *PostgresSavedJobRepository) ListJobIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT job_id FROM saved_jobs WHERE user_id = $1 ORDER BY saved_date DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
