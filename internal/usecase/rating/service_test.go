package rating

import (
	"context"
	"errors"
	"testing"

	"jobni/internal/domain/apperr"
	"jobni/internal/domain/application"
	"jobni/internal/domain/job"
	"jobni/internal/domain/user"
	"jobni/internal/testutil/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRate(t *testing.T) {
	st := memstore.New()
	s := NewService(st)
	ctx := context.Background()

	company := "Mart"
	emp := st.SeedUser(user.User{Name: "Emp", Email: "e@x.sa", Role: user.RoleEmployer, CompanyName: &company})
	worker := st.SeedUser(user.User{Name: "W", Email: "w@x.sa", Role: user.RoleJobSeeker})
	other := st.SeedUser(user.User{Name: "O", Email: "o@x.sa", Role: user.RoleJobSeeker})
	done := st.SeedJob(job.Job{EmployerID: emp.ID, Title: "Cashier", Category: job.CategoryRetail, DurationType: job.DurationWeek})
	open := st.SeedJob(job.Job{EmployerID: emp.ID, Title: "Stocker", Category: job.CategoryRetail, DurationType: job.DurationWeek})
	st.SeedApplication(application.Application{JobID: done.ID, ApplicantID: worker.ID, EmployerID: emp.ID, Status: application.StatusCompleted})
	st.SeedApplication(application.Application{JobID: open.ID, ApplicantID: worker.ID, EmployerID: emp.ID, Status: application.StatusAccepted})

	r, err := s.Rate(ctx, emp.Actor(), RateInput{JobID: done.ID, RatedID: worker.ID, Score: 5, Comment: " Punctual "})
	require.NoError(t, err)
	require.NotNil(t, r.Comment)
	assert.Equal(t, "Punctual", *r.Comment)

	_, err = s.Rate(ctx, worker.Actor(), RateInput{JobID: done.ID, RatedID: emp.ID, Score: 4})
	require.NoError(t, err)

	_, err = s.Rate(ctx, emp.Actor(), RateInput{JobID: done.ID, RatedID: worker.ID, Score: 3})
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	rated, err := st.Users().GetByID(ctx, worker.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, rated.Rating)
	assert.Equal(t, 1, rated.TotalRatings)

	list, err := s.ListForUser(ctx, worker.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = s.Rate(ctx, emp.Actor(), RateInput{JobID: open.ID, RatedID: worker.ID, Score: 4})
	assert.True(t, errors.Is(err, apperr.ErrInvalid), "accepted is not completed")

	_, err = s.Rate(ctx, other.Actor(), RateInput{JobID: done.ID, RatedID: emp.ID, Score: 1})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = s.Rate(ctx, emp.Actor(), RateInput{JobID: uuid.New(), RatedID: worker.ID, Score: 6})
	assert.True(t, errors.Is(err, apperr.ErrInvalid))

	_, err = s.Rate(ctx, emp.Actor(), RateInput{JobID: done.ID, RatedID: emp.ID, Score: 3})
	assert.True(t, errors.Is(err, apperr.ErrInvalid))
}
