package job

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"jobni/internal/domain/apperr"
	"jobni/internal/domain/job"
	"jobni/internal/domain/user"
	"jobni/internal/testutil/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	gets    int
	hits    int
}

func newMapCache() *mapCache { return &mapCache{entries: map[string][]byte{}} }

func (c *mapCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	b, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(b, out)
}

func (c *mapCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = b
	return nil
}

func (c *mapCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	return nil
}

func ptr[T any](v T) *T { return &v }

func fixture(t *testing.T) (*Service, *memstore.Store, *mapCache, user.User) {
	t.Helper()
	st := memstore.New()
	cache := newMapCache()
	s := NewService(st.Jobs(), st.Users(), cache, time.Minute)
	emp := st.SeedUser(user.User{Name: "Emp", Email: "emp@x.sa", Role: user.RoleEmployer, CompanyName: ptr("Riyadh Events Co")})
	return s, st, cache, emp
}

func validFields() Fields {
	return Fields{
		Title:         "Event Usher",
		Description:   "Guide guests at the expo",
		Location:      "Riyadh",
		Category:      "events",
		DurationType:  "days_4",
		DurationValue: "4 days",
		Salary:        800,
		Requirements:  []string{"Arabic", " ", "English"},
	}
}

func TestCreate(t *testing.T) {
	s, _, _, emp := fixture(t)
	ctx := context.Background()

	j, err := s.Create(ctx, emp.Actor(), validFields())
	require.NoError(t, err)
	assert.Equal(t, emp.ID, j.EmployerID)
	assert.Equal(t, "Riyadh Events Co", j.CompanyName, "defaults to the employer's company")
	assert.Equal(t, job.StatusActive, j.Status)
	assert.Equal(t, []string{"Arabic", "English"}, j.Requirements)
}

func TestCreate_Rejections(t *testing.T) {
	s, st, _, emp := fixture(t)
	ctx := context.Background()
	seeker := st.SeedUser(user.User{Name: "S", Email: "s@x.sa", Role: user.RoleJobSeeker})

	_, err := s.Create(ctx, seeker.Actor(), validFields())
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	bad := map[string]func(*Fields){
		"negative salary": func(f *Fields) { f.Salary = -1 },
		"unknown category": func(f *Fields) { f.Category = "farming" },
		"unknown duration": func(f *Fields) { f.DurationType = "year" },
		"missing title":    func(f *Fields) { f.Title = " " },
		"missing location": func(f *Fields) { f.Location = "" },
	}
	for name, mutate := range bad {
		t.Run(name, func(t *testing.T) {
			f := validFields()
			mutate(&f)
			_, err := s.Create(ctx, emp.Actor(), f)
			assert.True(t, errors.Is(err, apperr.ErrInvalid), "got %v", err)
		})
	}
}

func TestList_FiltersAndOrder(t *testing.T) {
	s, st, _, emp := fixture(t)
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	older := st.SeedJob(job.Job{EmployerID: emp.ID, Title: "Cashier", Description: "Tills", CompanyName: "Mart", Location: "Jeddah", Category: job.CategoryRetail, DurationType: job.DurationWeek, PostedDate: base})
	newer := st.SeedJob(job.Job{EmployerID: emp.ID, Title: "Barista", Description: "Coffee", CompanyName: "Brew House", Location: "Riyadh", Category: job.CategoryHospitality, DurationType: job.DurationHours8, PostedDate: base.Add(time.Minute)})
	st.SeedJob(job.Job{EmployerID: emp.ID, Title: "Closed", Description: "x", Location: "Riyadh", Category: job.CategoryTech, DurationType: job.DurationHour, Status: job.StatusClosed, PostedDate: base.Add(2 * time.Minute)})

	all, err := s.List(ctx, ListInput{Category: "all"})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID)
	assert.Equal(t, older.ID, all[1].ID)

	bySearch, err := s.List(ctx, ListInput{Search: "BREW"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, newer.ID, bySearch[0].ID)

	byLoc, err := s.List(ctx, ListInput{Location: "jed"})
	require.NoError(t, err)
	require.Len(t, byLoc, 1)
	assert.Equal(t, older.ID, byLoc[0].ID)

	withClosed, err := s.List(ctx, ListInput{Status: "all"})
	require.NoError(t, err)
	assert.Len(t, withClosed, 3)

	_, err = s.List(ctx, ListInput{Category: "farming"})
	assert.True(t, errors.Is(err, apperr.ErrInvalid))
}

func TestList_CachedUntilWrite(t *testing.T) {
	s, _, cache, emp := fixture(t)
	ctx := context.Background()

	first, err := s.List(ctx, ListInput{})
	require.NoError(t, err)
	assert.Empty(t, first)

	_, err = s.List(ctx, ListInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)

	_, err = s.Create(ctx, emp.Actor(), validFields())
	require.NoError(t, err)

	after, err := s.List(ctx, ListInput{})
	require.NoError(t, err)
	assert.Len(t, after, 1, "create invalidates cached searches")
}

func TestGet_CountsViews(t *testing.T) {
	s, st, _, emp := fixture(t)
	ctx := context.Background()
	j := st.SeedJob(job.Job{EmployerID: emp.ID, Title: "T", Description: "D", Location: "L", Category: job.CategoryTech, DurationType: job.DurationHour})

	got, err := s.Get(ctx, j.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Views)

	_, err = s.Get(ctx, uuid.New())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestUpdateAndClose_OwnerOrAdmin(t *testing.T) {
	s, st, _, emp := fixture(t)
	ctx := context.Background()
	other := st.SeedUser(user.User{Name: "O", Email: "o@x.sa", Role: user.RoleEmployer, CompanyName: ptr("Other")})
	admin := st.SeedUser(user.User{Name: "A", Email: "a@x.sa", Role: user.RoleAdmin})

	j, err := s.Create(ctx, emp.Actor(), validFields())
	require.NoError(t, err)

	_, err = s.Update(ctx, other.Actor(), j.ID, UpdateInput{Title: ptr("Hijack")})
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	updated, err := s.Update(ctx, emp.Actor(), j.ID, UpdateInput{Title: ptr("Senior Usher"), Salary: ptr(950.0)})
	require.NoError(t, err)
	assert.Equal(t, "Senior Usher", updated.Title)
	assert.Equal(t, 950.0, updated.Salary)

	_, err = s.Update(ctx, emp.Actor(), j.ID, UpdateInput{Salary: ptr(-5.0)})
	assert.True(t, errors.Is(err, apperr.ErrInvalid))

	_, err = s.Close(ctx, other.Actor(), j.ID)
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	closed, err := s.Close(ctx, admin.Actor(), j.ID)
	require.NoError(t, err)
	assert.Equal(t, job.StatusClosed, closed.Status)

	active, err := s.List(ctx, ListInput{})
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestSearchCacheKey_Normalizes(t *testing.T) {
	a := SearchCacheKey(job.Filter{Search: "  Event   Usher ", Status: job.StatusActive})
	b := SearchCacheKey(job.Filter{Search: "event usher", Status: job.StatusActive})
	c := SearchCacheKey(job.Filter{Search: "event usher", Status: job.StatusClosed})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, "jobs:search:"))
}
