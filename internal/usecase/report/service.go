package report

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobni/internal/domain/apperr"
	"jobni/internal/domain/application"
	"jobni/internal/domain/authz"
	"jobni/internal/domain/job"
	"jobni/internal/domain/report"
	"jobni/internal/domain/store"
	"jobni/internal/domain/user"
	"jobni/internal/invoice"
	"jobni/internal/observability"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Stats is a flat role-scoped mapping, serialized as-is.
type Stats map[string]float64

type File struct {
	Name        string
	ContentType string
	Body        []byte
}

type Service struct {
	store    store.Repositories
	renderer invoice.Renderer
	currency string
	now      func() time.Time
}

func NewService(st store.Repositories, renderer invoice.Renderer) *Service {
	return &Service{store: st, renderer: renderer, currency: invoice.Currency, now: time.Now}
}

// WithCurrency overrides the currency printed on invoices.
func (s *Service) WithCurrency(code string) *Service {
	if code = strings.TrimSpace(code); code != "" {
		s.currency = strings.ToUpper(code)
	}
	return s
}

// Stats recomputes the caller's figures from the lifecycle tables on every call.
func (s *Service) Stats(ctx context.Context, actor user.Actor) (_ Stats, err error) {
	ctx, span := observability.StartSpan(ctx, "report.stats",
		trace.WithAttributes(attribute.String("user.role", string(actor.Role))))
	defer func() { observability.EndSpan(span, err) }()

	reports := s.store.Reports()
	switch actor.Role {
	case user.RoleJobSeeker:
		apps, err := reports.ApplicationCounts(ctx, report.Scope{ApplicantID: &actor.ID})
		if err != nil {
			return nil, apperr.Internal(err)
		}
		return Stats{
			"total_applications":    float64(apps.Total),
			"pending_applications":  float64(apps.Pending),
			"accepted_applications": float64(apps.Accepted),
			"rejected_applications": float64(apps.Rejected),
			"completed_jobs":        float64(apps.Completed),
			"total_earnings":        apps.CompletedSalary,
		}, nil

	case user.RoleEmployer:
		jobs, err := reports.JobCounts(ctx, &actor.ID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		apps, err := reports.ApplicationCounts(ctx, report.Scope{EmployerID: &actor.ID})
		if err != nil {
			return nil, apperr.Internal(err)
		}
		return Stats{
			"total_jobs":            float64(jobs.Total),
			"active_jobs":           float64(jobs.Active),
			"total_applications":    float64(apps.Total),
			"pending_applications":  float64(apps.Pending),
			"accepted_applications": float64(apps.Accepted),
			"rejected_applications": float64(apps.Rejected),
			"completed_jobs":        float64(apps.Completed),
			"total_spent":           apps.CompletedSalary,
		}, nil

	case user.RoleAdmin:
		return s.platformStats(ctx)

	default:
		return nil, apperr.New(apperr.ErrForbidden, "Not authorized")
	}
}

func (s *Service) AdminStats(ctx context.Context, actor user.Actor) (Stats, error) {
	if err := authz.RequireRole(actor, "Admin only", user.RoleAdmin); err != nil {
		return nil, err
	}
	return s.platformStats(ctx)
}

func (s *Service) platformStats(ctx context.Context) (Stats, error) {
	reports := s.store.Reports()
	users, err := reports.UserCounts(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	jobs, err := reports.JobCounts(ctx, nil)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	apps, err := reports.ApplicationCounts(ctx, report.Scope{})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return Stats{
		"total_users":           float64(users.Total),
		"total_jobs":            float64(jobs.Total),
		"active_jobs":           float64(jobs.Active),
		"total_applications":    float64(apps.Total),
		"pending_applications":  float64(apps.Pending),
		"accepted_applications": float64(apps.Accepted),
		"completed_jobs":        float64(apps.Completed),
		"total_earnings":        apps.CompletedSalary,
		"employers":             float64(users.Employers),
		"job_seekers":           float64(users.JobSeekers),
	}, nil
}

// Invoice renders the payment record of an accepted or completed
// application for one of its parties.
func (s *Service) Invoice(ctx context.Context, actor user.Actor, applicationID uuid.UUID) (_ File, err error) {
	ctx, span := observability.StartSpan(ctx, "report.invoice",
		trace.WithAttributes(attribute.String("application.id", applicationID.String())))
	defer func() { observability.EndSpan(span, err) }()

	doc, err := s.invoiceDocument(ctx, actor, applicationID)
	if err != nil {
		return File{}, err
	}

	body, err := s.renderer.Render(ctx, doc)
	if err != nil {
		return File{}, apperr.Internal(err)
	}
	return File{
		Name:        invoice.Filename(applicationID, s.renderer),
		ContentType: s.renderer.ContentType(),
		Body:        body,
	}, nil
}

func (s *Service) invoiceDocument(ctx context.Context, actor user.Actor, applicationID uuid.UUID) (invoice.Document, error) {
	a, err := s.store.Applications().GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return invoice.Document{}, apperr.New(apperr.ErrNotFound, "Application not found")
		}
		return invoice.Document{}, apperr.Internal(err)
	}
	if !authz.IsParty(actor, a.ApplicantID, a.EmployerID) {
		return invoice.Document{}, apperr.New(apperr.ErrForbidden, "Not authorized")
	}
	if a.Status != application.StatusAccepted && a.Status != application.StatusCompleted {
		return invoice.Document{}, apperr.New(apperr.ErrForbidden, "Invoice only for accepted/completed jobs")
	}

	j, err := s.store.Jobs().GetByID(ctx, a.JobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return invoice.Document{}, apperr.New(apperr.ErrNotFound, "Job not found")
		}
		return invoice.Document{}, apperr.Internal(err)
	}
	worker, err := s.party(ctx, a.ApplicantID)
	if err != nil {
		return invoice.Document{}, err
	}
	employer, err := s.party(ctx, a.EmployerID)
	if err != nil {
		return invoice.Document{}, err
	}

	issued := s.now().UTC()
	return invoice.Document{
		Number:        invoice.Number(a.ID, issued),
		IssuedAt:      issued,
		ApplicationID: a.ID,
		Status:        string(a.Status),
		JobTitle:      j.Title,
		CompanyName:   j.CompanyName,
		Location:      j.Location,
		DurationValue: j.DurationValue,
		AppliedDate:   a.AppliedDate,
		Worker:        worker,
		Employer:      employer,
		Amount:        j.Salary,
		Currency:      s.currency,
	}, nil
}

func (s *Service) party(ctx context.Context, id uuid.UUID) (invoice.Party, error) {
	u, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return invoice.Party{Name: "Unknown"}, nil
		}
		return invoice.Party{}, apperr.Internal(err)
	}
	p := invoice.Party{Name: u.Name, Email: u.Email}
	if u.Phone != nil {
		p.Phone = *u.Phone
	}
	if u.CompanyName != nil {
		p.Company = *u.CompanyName
	}
	return p, nil
}
