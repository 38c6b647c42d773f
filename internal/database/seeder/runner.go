package seeder

import (
	"context"
	"fmt"
	"time"

	"jobni/internal/database"
	"jobni/internal/observability"
)

type Runner struct {
	Seeders []Seeder
}

// Run applies seeders in order and stops at the first failure. Each seeder
// must be safe to re-run.
func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	logger := observability.Component("seeder")

	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		start := time.Now()
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		logger.Info().Str("seeder", s.Name()).Dur("elapsed", time.Since(start)).Msg("seeded")
	}
	return nil
}
