package job

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobni/internal/domain/apperr"
	"jobni/internal/domain/authz"
	"jobni/internal/domain/job"
	"jobni/internal/domain/user"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// filterAll is the UI's "no filter" sentinel for enum query params.
const filterAll = "all"

type Fields struct {
	Title         string
	Description   string
	CompanyName   string
	Location      string
	Category      string
	DurationType  string
	DurationValue string
	Salary        float64
	Requirements  []string
	Deadline      *time.Time
}

type UpdateInput struct {
	Title         *string
	Description   *string
	CompanyName   *string
	Location      *string
	Category      *string
	DurationType  *string
	DurationValue *string
	Salary        *float64
	Requirements  *[]string
	Status        *string
	Deadline      *time.Time
}

type ListInput struct {
	Category     string
	DurationType string
	Location     string
	Search       string
	Status       string
	Limit        int
	Offset       int
}

type Service struct {
	jobs     job.Repository
	users    user.Repository
	cache    SearchCache
	cacheTTL time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

func NewService(jobs job.Repository, users user.Repository, cache SearchCache, cacheTTL time.Duration) *Service {
	return &Service{
		jobs:     jobs,
		users:    users,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   log.With().Str("component", "jobs").Logger(),
		now:      time.Now,
	}
}

func (s *Service) Create(ctx context.Context, actor user.Actor, in Fields) (job.Job, error) {
	if err := authz.RequireRole(actor, "Only employers can post jobs", user.RoleEmployer, user.RoleAdmin); err != nil {
		return job.Job{}, err
	}

	now := s.now().UTC()
	j := job.Job{
		ID:            uuid.New(),
		EmployerID:    actor.ID,
		Title:         strings.TrimSpace(in.Title),
		Description:   strings.TrimSpace(in.Description),
		CompanyName:   strings.TrimSpace(in.CompanyName),
		Location:      strings.TrimSpace(in.Location),
		Category:      job.Category(strings.TrimSpace(in.Category)),
		DurationType:  job.DurationType(strings.TrimSpace(in.DurationType)),
		DurationValue: strings.TrimSpace(in.DurationValue),
		Salary:        in.Salary,
		Requirements:  cleanList(in.Requirements),
		Status:        job.StatusActive,
		Deadline:      in.Deadline,
		PostedDate:    now,
		UpdatedAt:     now,
	}

	if j.CompanyName == "" {
		owner, err := s.users.GetByID(ctx, actor.ID)
		if err != nil && !errors.Is(err, user.ErrNotFound) {
			return job.Job{}, apperr.Internal(err)
		}
		if owner.CompanyName != nil {
			j.CompanyName = *owner.CompanyName
		}
	}

	if err := validate(j); err != nil {
		return job.Job{}, err
	}

	if err := s.jobs.Create(ctx, j); err != nil {
		return job.Job{}, apperr.Internal(err)
	}
	s.invalidate(ctx)
	return j, nil
}

func (s *Service) List(ctx context.Context, in ListInput) ([]job.Job, error) {
	f, err := toFilter(in)
	if err != nil {
		return nil, err
	}

	key := SearchCacheKey(f)
	if s.cache != nil {
		var cached []job.Job
		if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			s.logger.Debug().Str("key", key).Msg("job search cache hit")
			return cached, nil
		}
	}

	jobs, err := s.jobs.List(ctx, f)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, jobs, s.cacheTTL); err != nil {
			s.logger.Warn().Err(err).Msg("job search cache write failed")
		}
	}
	return jobs, nil
}

// Get returns the job and counts the view.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (job.Job, error) {
	if err := s.jobs.IncrementViews(ctx, id); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, apperr.New(apperr.ErrNotFound, "Job not found")
		}
		return job.Job{}, apperr.Internal(err)
	}
	return s.load(ctx, id)
}

func (s *Service) Update(ctx context.Context, actor user.Actor, id uuid.UUID, in UpdateInput) (job.Job, error) {
	j, err := s.load(ctx, id)
	if err != nil {
		return job.Job{}, err
	}
	if err := authz.RequireOwner(actor, j.EmployerID, "Not authorized to modify this job"); err != nil {
		return job.Job{}, err
	}

	if in.Title != nil {
		j.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		j.Description = strings.TrimSpace(*in.Description)
	}
	if in.CompanyName != nil {
		j.CompanyName = strings.TrimSpace(*in.CompanyName)
	}
	if in.Location != nil {
		j.Location = strings.TrimSpace(*in.Location)
	}
	if in.Category != nil {
		j.Category = job.Category(strings.TrimSpace(*in.Category))
	}
	if in.DurationType != nil {
		j.DurationType = job.DurationType(strings.TrimSpace(*in.DurationType))
	}
	if in.DurationValue != nil {
		j.DurationValue = strings.TrimSpace(*in.DurationValue)
	}
	if in.Salary != nil {
		j.Salary = *in.Salary
	}
	if in.Requirements != nil {
		j.Requirements = cleanList(*in.Requirements)
	}
	if in.Status != nil {
		j.Status = job.Status(strings.TrimSpace(*in.Status))
		if !j.Status.Valid() {
			return job.Job{}, apperr.New(apperr.ErrInvalid, "Invalid job status")
		}
	}
	if in.Deadline != nil {
		j.Deadline = in.Deadline
	}

	if err := validate(j); err != nil {
		return job.Job{}, err
	}
	if err := s.jobs.Update(ctx, j); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, apperr.New(apperr.ErrNotFound, "Job not found")
		}
		return job.Job{}, apperr.Internal(err)
	}
	s.invalidate(ctx)
	return s.load(ctx, id)
}

// Close soft-deletes a job. Applications keep referencing it.
func (s *Service) Close(ctx context.Context, actor user.Actor, id uuid.UUID) (job.Job, error) {
	j, err := s.load(ctx, id)
	if err != nil {
		return job.Job{}, err
	}
	if err := authz.RequireOwner(actor, j.EmployerID, "Not authorized to delete this job"); err != nil {
		return job.Job{}, err
	}

	if err := s.jobs.SetStatus(ctx, id, job.StatusClosed); err != nil {
		return job.Job{}, apperr.Internal(err)
	}
	s.invalidate(ctx)
	j.Status = job.StatusClosed
	return j, nil
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (job.Job, error) {
	j, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, apperr.New(apperr.ErrNotFound, "Job not found")
		}
		return job.Job{}, apperr.Internal(err)
	}
	return j, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, searchKeyPrefix+"*"); err != nil {
		s.logger.Warn().Err(err).Msg("job search cache invalidation failed")
	}
}

func toFilter(in ListInput) (job.Filter, error) {
	f := job.Filter{
		Location: strings.TrimSpace(in.Location),
		Search:   strings.TrimSpace(in.Search),
		Status:   job.StatusActive,
	}

	if c := strings.TrimSpace(in.Category); c != "" && c != filterAll {
		f.Category = job.Category(c)
		if !f.Category.Valid() {
			return job.Filter{}, apperr.New(apperr.ErrInvalid, "Unknown category")
		}
	}
	if d := strings.TrimSpace(in.DurationType); d != "" && d != filterAll {
		f.DurationType = job.DurationType(d)
		if !f.DurationType.Valid() {
			return job.Filter{}, apperr.New(apperr.ErrInvalid, "Unknown duration type")
		}
	}
	switch st := strings.TrimSpace(in.Status); st {
	case "":
	case filterAll:
		f.Status = ""
	default:
		f.Status = job.Status(st)
		if !f.Status.Valid() {
			return job.Filter{}, apperr.New(apperr.ErrInvalid, "Unknown job status")
		}
	}

	if in.Limit < 0 || in.Offset < 0 {
		return job.Filter{}, apperr.New(apperr.ErrInvalid, "limit and offset must be non-negative")
	}
	f.Limit, f.Offset = in.Limit, in.Offset
	return f, nil
}

func validate(j job.Job) error {
	switch {
	case j.Title == "":
		return apperr.New(apperr.ErrInvalid, "Title is required")
	case j.Description == "":
		return apperr.New(apperr.ErrInvalid, "Description is required")
	case j.Location == "":
		return apperr.New(apperr.ErrInvalid, "Location is required")
	case !j.Category.Valid():
		return apperr.New(apperr.ErrInvalid, "Invalid category")
	case !j.DurationType.Valid():
		return apperr.New(apperr.ErrInvalid, "Invalid duration type")
	case j.Salary < 0:
		return apperr.New(apperr.ErrInvalid, "Salary must not be negative")
	}
	return nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
