package report

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"jobni/internal/domain/apperr"
	"jobni/internal/domain/application"
	"jobni/internal/domain/job"
	"jobni/internal/domain/user"
	"jobni/internal/invoice"
	"jobni/internal/testutil/memstore"
	lifecycle "jobni/internal/usecase/application"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureRenderer struct {
	last invoice.Document
}

func (r *captureRenderer) Render(_ context.Context, doc invoice.Document) ([]byte, error) {
	r.last = doc
	return []byte("%PDF-fake"), nil
}
func (r *captureRenderer) ContentType() string { return "application/pdf" }
func (r *captureRenderer) Extension() string   { return "pdf" }

func ptr[T any](v T) *T { return &v }

type board struct {
	st       *memstore.Store
	reports  *Service
	life     *lifecycle.Service
	renderer *captureRenderer
	employer user.User
	admin    user.User
	jobs     []job.Job
}

func newBoard(t *testing.T) board {
	t.Helper()
	st := memstore.New()
	r := &captureRenderer{}
	b := board{st: st, reports: NewService(st, r), life: lifecycle.NewService(st, nil), renderer: r}
	b.employer = st.SeedUser(user.User{Name: "Nora", Email: "nora@events.sa", Role: user.RoleEmployer, CompanyName: ptr("Riyadh Events Co")})
	b.admin = st.SeedUser(user.User{Name: "Admin", Email: "admin@jobni.sa", Role: user.RoleAdmin})
	for i, salary := range []float64{800, 300, 150} {
		b.jobs = append(b.jobs, st.SeedJob(job.Job{
			EmployerID: b.employer.ID, Title: []string{"Usher", "Cashier", "Tutor"}[i], CompanyName: "Riyadh Events Co",
			Location: "Riyadh", Category: job.CategoryEvents, DurationType: job.DurationWeek, Salary: salary,
		}))
	}
	return b
}

func (b board) seeker(t *testing.T, name string) user.User {
	t.Helper()
	return b.st.SeedUser(user.User{Name: name, Email: strings.ToLower(name) + "@mail.sa", Role: user.RoleJobSeeker})
}

func TestStats_EmployerReconcilesWithLifecycle(t *testing.T) {
	b := newBoard(t)
	ctx := context.Background()

	var apps []application.Application
	for i := 0; i < 7; i++ {
		s := b.seeker(t, "Seeker"+string(rune('A'+i)))
		a, err := b.life.Apply(ctx, s.Actor(), lifecycle.ApplyInput{JobID: b.jobs[i%3].ID})
		require.NoError(t, err)
		apps = append(apps, a)
	}
	for _, a := range apps[:2] {
		_, err := b.life.Decide(ctx, b.employer.Actor(), a.ID, application.StatusAccepted)
		require.NoError(t, err)
	}

	stats, err := b.reports.Stats(ctx, b.employer.Actor())
	require.NoError(t, err)
	assert.Equal(t, 3.0, stats["total_jobs"])
	assert.Equal(t, 3.0, stats["active_jobs"])
	assert.Equal(t, 7.0, stats["total_applications"])
	assert.Equal(t, 5.0, stats["pending_applications"])
	assert.Equal(t, 2.0, stats["accepted_applications"])
	assert.Equal(t, 0.0, stats["completed_jobs"])

	_, err = b.life.Decide(ctx, b.employer.Actor(), apps[2].ID, application.StatusRejected)
	require.NoError(t, err)
	_, err = b.life.Complete(ctx, b.employer.Actor(), apps[0].ID)
	require.NoError(t, err)

	stats, err = b.reports.Stats(ctx, b.employer.Actor())
	require.NoError(t, err)
	assert.Equal(t, 4.0, stats["pending_applications"])
	assert.Equal(t, 1.0, stats["accepted_applications"])
	assert.Equal(t, 1.0, stats["rejected_applications"])
	assert.Equal(t, 1.0, stats["completed_jobs"])
	assert.Equal(t, 800.0, stats["total_spent"])
}

func TestStats_SeekerAndAdmin(t *testing.T) {
	b := newBoard(t)
	ctx := context.Background()
	s := b.seeker(t, "Saad")

	for _, j := range b.jobs[:2] {
		a, err := b.life.Apply(ctx, s.Actor(), lifecycle.ApplyInput{JobID: j.ID})
		require.NoError(t, err)
		_, err = b.life.Decide(ctx, b.employer.Actor(), a.ID, application.StatusAccepted)
		require.NoError(t, err)
		_, err = b.life.Complete(ctx, b.employer.Actor(), a.ID)
		require.NoError(t, err)
	}
	_, err := b.life.Apply(ctx, s.Actor(), lifecycle.ApplyInput{JobID: b.jobs[2].ID})
	require.NoError(t, err)

	mine, err := b.reports.Stats(ctx, s.Actor())
	require.NoError(t, err)
	assert.Equal(t, 3.0, mine["total_applications"])
	assert.Equal(t, 1.0, mine["pending_applications"])
	assert.Equal(t, 2.0, mine["completed_jobs"])
	assert.Equal(t, 1100.0, mine["total_earnings"])
	assert.NotContains(t, mine, "total_jobs")

	platform, err := b.reports.Stats(ctx, b.admin.Actor())
	require.NoError(t, err)
	assert.Equal(t, 3.0, platform["total_users"])
	assert.Equal(t, 1.0, platform["employers"])
	assert.Equal(t, 1.0, platform["job_seekers"])
	assert.Equal(t, 1100.0, platform["total_earnings"])

	adminOnly, err := b.reports.AdminStats(ctx, b.admin.Actor())
	require.NoError(t, err)
	assert.Equal(t, platform, adminOnly)

	_, err = b.reports.AdminStats(ctx, b.employer.Actor())
	assert.True(t, errors.Is(err, apperr.ErrForbidden))
}

func TestInvoice(t *testing.T) {
	b := newBoard(t)
	ctx := context.Background()
	s := b.seeker(t, "Saad")
	stranger := b.seeker(t, "Lama")
	b.reports.now = func() time.Time { return time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC) }

	a, err := b.life.Apply(ctx, s.Actor(), lifecycle.ApplyInput{JobID: b.jobs[0].ID})
	require.NoError(t, err)

	_, err = b.reports.Invoice(ctx, s.Actor(), a.ID)
	assert.True(t, errors.Is(err, apperr.ErrForbidden), "pending application has no invoice")

	_, err = b.reports.Invoice(ctx, s.Actor(), uuid.New())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = b.life.Decide(ctx, b.employer.Actor(), a.ID, application.StatusAccepted)
	require.NoError(t, err)
	_, err = b.life.Complete(ctx, b.employer.Actor(), a.ID)
	require.NoError(t, err)

	_, err = b.reports.Invoice(ctx, stranger.Actor(), a.ID)
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	for _, caller := range []user.User{s, b.employer, b.admin} {
		f, err := b.reports.Invoice(ctx, caller.Actor(), a.ID)
		require.NoError(t, err)
		assert.Equal(t, "invoice_"+a.ID.String()+".pdf", f.Name)
		assert.Equal(t, "application/pdf", f.ContentType)
		assert.NotEmpty(t, f.Body)
	}

	doc := b.renderer.last
	assert.Equal(t, 800.0, doc.Amount)
	assert.Equal(t, invoice.Currency, doc.Currency)
	assert.Equal(t, "Saad", doc.Worker.Name)
	assert.Equal(t, "Nora", doc.Employer.Name)
	assert.Equal(t, "Riyadh Events Co", doc.Employer.Company)
	assert.Equal(t, "Usher", doc.JobTitle)
	assert.Equal(t, "completed", doc.Status)
	assert.True(t, strings.HasPrefix(doc.Number, "JOB-20260501-"))
}

func TestInvoice_RejectedIsForbidden(t *testing.T) {
	b := newBoard(t)
	ctx := context.Background()
	s := b.seeker(t, "Saad")
	a := b.st.SeedApplication(application.Application{JobID: b.jobs[1].ID, ApplicantID: s.ID, EmployerID: b.employer.ID, Status: application.StatusRejected})

	_, err := b.reports.Invoice(ctx, b.employer.Actor(), a.ID)
	assert.True(t, errors.Is(err, apperr.ErrForbidden))
}
