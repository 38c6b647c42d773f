package repository

import (
	"context"

	"jobni/internal/database"
	"jobni/internal/database/postgres"
	"jobni/internal/domain/rating"

	"github.com/google/uuid"
)

type PostgresRatingRepository struct {
	db database.Querier
}

func NewPostgresRatingRepository(db database.Querier) *PostgresRatingRepository {
	return &PostgresRatingRepository{db: db}
}

func (r *PostgresRatingRepository) Create(ctx context.Context, rt rating.Rating) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO ratings (id, job_id, rater_id, rated_id, rating, comment, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rt.ID, rt.JobID, rt.RaterID, rt.RatedID, rt.Score, rt.Comment, rt.CreatedAt,
	)
	if postgres.IsUniqueViolation(err, "ratings_job_rater_rated_key") {
		return rating.ErrDuplicate
	}
	return err
}

func (r *PostgresRatingRepository) ListForUser(ctx context.Context, ratedID uuid.UUID) ([]rating.Rating, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, job_id, rater_id, rated_id, rating::float8, comment, created_at
		 FROM ratings
		 WHERE rated_id = $1
		 ORDER BY created_at DESC`,
		ratedID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]rating.Rating, 0)
	for rows.Next() {
		var rt rating.Rating
		if err := rows.Scan(&rt.ID, &rt.JobID, &rt.RaterID, &rt.RatedID, &rt.Score, &rt.Comment, &rt.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRatingRepository) Recompute(ctx context.Context, ratedID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users u
		 SET rating = COALESCE(s.avg, 0), total_ratings = s.cnt
		 FROM (
		     SELECT round(avg(rating), 2) AS avg, count(*) AS cnt
		     FROM ratings WHERE rated_id = $1
		 ) s
		 WHERE u.id = $1`,
		ratedID,
	)
	return err
}
