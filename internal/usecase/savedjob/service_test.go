package savedjob

import (
	"context"
	"errors"
	"testing"

	"jobni/internal/domain/apperr"
	"jobni/internal/domain/job"
	"jobni/internal/domain/user"
	"jobni/internal/testutil/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveUnsaveList(t *testing.T) {
	st := memstore.New()
	s := NewService(st.SavedJobs(), st.Jobs())
	ctx := context.Background()

	company := "Co"
	emp := st.SeedUser(user.User{Name: "E", Email: "e@x.sa", Role: user.RoleEmployer, CompanyName: &company})
	seeker := st.SeedUser(user.User{Name: "S", Email: "s@x.sa", Role: user.RoleJobSeeker})
	j := st.SeedJob(job.Job{EmployerID: emp.ID, Title: "T", Category: job.CategoryTech, DurationType: job.DurationHour})

	require.NoError(t, s.Save(ctx, seeker.Actor(), j.ID))
	assert.True(t, errors.Is(s.Save(ctx, seeker.Actor(), j.ID), apperr.ErrConflict))
	assert.True(t, errors.Is(s.Save(ctx, seeker.Actor(), uuid.New()), apperr.ErrNotFound))
	assert.True(t, errors.Is(s.Save(ctx, emp.Actor(), j.ID), apperr.ErrForbidden))

	ids, err := s.List(ctx, seeker.Actor())
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{j.ID}, ids)

	require.NoError(t, s.Unsave(ctx, seeker.Actor(), j.ID))
	assert.True(t, errors.Is(s.Unsave(ctx, seeker.Actor(), j.ID), apperr.ErrNotFound))

	ids, err = s.List(ctx, seeker.Actor())
	require.NoError(t, err)
	assert.Empty(t, ids)
}
