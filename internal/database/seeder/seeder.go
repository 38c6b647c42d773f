package seeder

import (
	"context"

	"jobni/internal/database"
)

// Seeder writes reference or demo rows. Run must be idempotent.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
