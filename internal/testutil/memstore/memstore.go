// Package memstore is an in-memory store.Store for tests. It enforces the
// same uniqueness rules as the Postgres schema and rolls back InTx callbacks
// that fail.
package memstore

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"jobni/internal/domain/application"
	"jobni/internal/domain/conversation"
	"jobni/internal/domain/job"
	"jobni/internal/domain/notification"
	"jobni/internal/domain/rating"
	"jobni/internal/domain/report"
	"jobni/internal/domain/savedjob"
	"jobni/internal/domain/store"
	"jobni/internal/domain/user"

	"github.com/google/uuid"
)

type savedKey struct {
	userID uuid.UUID
	jobID  uuid.UUID
}

type state struct {
	users         map[uuid.UUID]user.User
	jobs          map[uuid.UUID]job.Job
	applications  map[uuid.UUID]application.Application
	conversations map[uuid.UUID]conversation.Conversation
	messages      []conversation.Message
	seq           int64
	saved         map[savedKey]time.Time
	ratings       []rating.Rating
	notifications map[uuid.UUID]notification.Notification
}

func newState() *state {
	return &state{
		users:         map[uuid.UUID]user.User{},
		jobs:          map[uuid.UUID]job.Job{},
		applications:  map[uuid.UUID]application.Application{},
		conversations: map[uuid.UUID]conversation.Conversation{},
		saved:         map[savedKey]time.Time{},
		notifications: map[uuid.UUID]notification.Notification{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.jobs {
		c.jobs[k] = v
	}
	for k, v := range s.applications {
		c.applications[k] = v
	}
	for k, v := range s.conversations {
		c.conversations[k] = v
	}
	c.messages = append([]conversation.Message(nil), s.messages...)
	c.seq = s.seq
	for k, v := range s.saved {
		c.saved[k] = v
	}
	c.ratings = append([]rating.Rating(nil), s.ratings...)
	for k, v := range s.notifications {
		c.notifications[k] = v
	}
	return c
}

type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex
	st   *state

	// EnsureErr, when set, is returned by every Conversations().Ensure call.
	EnsureErr error
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{st: newState()}
}

func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, tx store.Repositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.st.clone()
	s.mu.Unlock()

	if err := fn(ctx, s); err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) Users() user.Repository                 { return userRepo{s} }
func (s *Store) Jobs() job.Repository                   { return jobRepo{s} }
func (s *Store) Applications() application.Repository   { return applicationRepo{s} }
func (s *Store) Conversations() conversation.Repository { return conversationRepo{s} }
func (s *Store) Notifications() notification.Repository { return notificationRepo{s} }
func (s *Store) Ratings() rating.Repository             { return ratingRepo{s} }
func (s *Store) SavedJobs() savedjob.Repository         { return savedJobRepo{s} }
func (s *Store) Reports() report.Repository             { return reportRepo{s} }

// SeedUser stores u as-is.
func (s *Store) SeedUser(u user.User) user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	s.st.users[u.ID] = u
	return u
}

// SeedJob stores j as-is.
func (s *Store) SeedJob(j job.Job) job.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.Status == "" {
		j.Status = job.StatusActive
	}
	if j.PostedDate.IsZero() {
		j.PostedDate = time.Now().UTC()
	}
	s.st.jobs[j.ID] = j
	return j
}

// SeedApplication stores a without the active-pair check, which lets tests
// build states the schema would refuse.
func (s *Store) SeedApplication(a application.Application) application.Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = application.StatusPending
	}
	if a.AppliedDate.IsZero() {
		a.AppliedDate = time.Now().UTC()
	}
	s.st.applications[a.ID] = a
	return a
}

func (s *Store) ConversationsFor(jobID, candidateID uuid.UUID) []conversation.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []conversation.Conversation
	for _, c := range s.st.conversations {
		if c.JobID == jobID && c.CandidateID == candidateID {
			out = append(out, c)
		}
	}
	return out
}

func (s *Store) ApplicationStatus(id uuid.UUID) application.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.applications[id].Status
}

func (s *Store) NotificationsFor(userID uuid.UUID) []notification.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []notification.Notification
	for _, n := range s.st.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.st.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return user.ErrDuplicateEmail
		}
	}
	r.s.st.users[u.ID] = u
	return nil
}

func (r userRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.st.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.st.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r userRepo) UpdateProfile(_ context.Context, u user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.st.users[u.ID]
	if !ok {
		return user.ErrNotFound
	}
	cur.Name, cur.Phone, cur.CompanyName, cur.Skills = u.Name, u.Phone, u.CompanyName, u.Skills
	r.s.st.users[u.ID] = cur
	return nil
}

func (r userRepo) List(_ context.Context) ([]user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]user.User, 0, len(r.s.st.users))
	for _, u := range r.s.st.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type jobRepo struct{ s *Store }

func (r jobRepo) Create(_ context.Context, j job.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.jobs[j.ID] = j
	return nil
}

func (r jobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j, ok := r.s.st.jobs[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}

func (r jobRepo) Update(_ context.Context, j job.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.st.jobs[j.ID]
	if !ok {
		return job.ErrNotFound
	}
	j.EmployerID, j.PostedDate, j.Views = cur.EmployerID, cur.PostedDate, cur.Views
	j.UpdatedAt = time.Now().UTC()
	r.s.st.jobs[j.ID] = j
	return nil
}

func (r jobRepo) SetStatus(_ context.Context, id uuid.UUID, status job.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j, ok := r.s.st.jobs[id]
	if !ok {
		return job.ErrNotFound
	}
	j.Status = status
	r.s.st.jobs[id] = j
	return nil
}

func (r jobRepo) IncrementViews(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j, ok := r.s.st.jobs[id]
	if !ok {
		return job.ErrNotFound
	}
	j.Views++
	r.s.st.jobs[id] = j
	return nil
}

func (r jobRepo) List(_ context.Context, f job.Filter) ([]job.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	contains := func(haystack, needle string) bool {
		return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
	}

	out := make([]job.Job, 0)
	for _, j := range r.s.st.jobs {
		if f.Status != "" && j.Status != f.Status {
			continue
		}
		if f.Category != "" && j.Category != f.Category {
			continue
		}
		if f.DurationType != "" && j.DurationType != f.DurationType {
			continue
		}
		if f.EmployerID != nil && j.EmployerID != *f.EmployerID {
			continue
		}
		if loc := strings.TrimSpace(f.Location); loc != "" && !contains(j.Location, loc) {
			continue
		}
		if q := strings.TrimSpace(f.Search); q != "" &&
			!contains(j.Title, q) && !contains(j.Description, q) && !contains(j.CompanyName, q) {
			continue
		}
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].PostedDate.After(out[k].PostedDate) })

	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return []job.Job{}, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

type applicationRepo struct{ s *Store }

func (r applicationRepo) Create(_ context.Context, a application.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.st.applications {
		if existing.JobID == a.JobID && existing.ApplicantID == a.ApplicantID && existing.Status.Active() {
			return application.ErrDuplicate
		}
	}
	r.s.st.applications[a.ID] = a
	return nil
}

func (r applicationRepo) GetByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.st.applications[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	return a, nil
}

func (r applicationRepo) Transition(_ context.Context, id uuid.UUID, from, to application.Status) (application.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.st.applications[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	if a.Status != from {
		return application.Application{}, application.ErrStaleStatus
	}
	a.Status = to
	a.UpdatedAt = time.Now().UTC()
	r.s.st.applications[id] = a
	return a, nil
}

func (r applicationRepo) List(_ context.Context, f application.ListFilter) ([]application.View, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]application.View, 0)
	for _, a := range r.s.st.applications {
		if f.ApplicantID != nil && a.ApplicantID != *f.ApplicantID {
			continue
		}
		if f.EmployerID != nil && a.EmployerID != *f.EmployerID {
			continue
		}
		if f.JobID != nil && a.JobID != *f.JobID {
			continue
		}
		j := r.s.st.jobs[a.JobID]
		u := r.s.st.users[a.ApplicantID]
		out = append(out, application.View{
			Application:    a,
			JobTitle:       j.Title,
			CompanyName:    j.CompanyName,
			Salary:         j.Salary,
			ApplicantName:  u.Name,
			ApplicantEmail: u.Email,
			ApplicantPhone: u.Phone,
		})
	}
	sort.Slice(out, func(i, k int) bool { return out[i].AppliedDate.After(out[k].AppliedDate) })
	return out, nil
}

type conversationRepo struct{ s *Store }

func (r conversationRepo) Ensure(_ context.Context, c conversation.Conversation) (conversation.Conversation, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.EnsureErr != nil {
		return conversation.Conversation{}, false, r.s.EnsureErr
	}
	for _, existing := range r.s.st.conversations {
		if existing.JobID == c.JobID && existing.CandidateID == c.CandidateID {
			return existing, false, nil
		}
	}
	r.s.st.conversations[c.ID] = c
	return c, true, nil
}

func (r conversationRepo) GetByID(_ context.Context, id uuid.UUID) (conversation.Conversation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.st.conversations[id]
	if !ok {
		return conversation.Conversation{}, conversation.ErrNotFound
	}
	return c, nil
}

func (r conversationRepo) List(_ context.Context, f conversation.ListFilter) ([]conversation.Summary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]conversation.Summary, 0)
	for _, c := range r.s.st.conversations {
		if f.EmployerID != nil && c.EmployerID != *f.EmployerID {
			continue
		}
		if f.CandidateID != nil && c.CandidateID != *f.CandidateID {
			continue
		}
		sum := conversation.Summary{
			Conversation:  c,
			JobTitle:      r.s.st.jobs[c.JobID].Title,
			EmployerName:  r.s.st.users[c.EmployerID].Name,
			CandidateName: r.s.st.users[c.CandidateID].Name,
		}
		for i := len(r.s.st.messages) - 1; i >= 0; i-- {
			m := r.s.st.messages[i]
			if m.ConversationID == c.ID {
				text, at := m.Text, m.CreatedAt
				sum.LastMessage, sum.LastMessageAt = &text, &at
				break
			}
		}
		out = append(out, sum)
	}
	lastActivity := func(s conversation.Summary) time.Time {
		if s.LastMessageAt != nil {
			return *s.LastMessageAt
		}
		return s.CreatedAt
	}
	sort.Slice(out, func(i, k int) bool { return lastActivity(out[i]).After(lastActivity(out[k])) })
	return out, nil
}

func (r conversationRepo) AppendMessage(_ context.Context, m conversation.Message) (conversation.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.conversations[m.ConversationID]; !ok {
		return conversation.Message{}, conversation.ErrNotFound
	}

	now := time.Now().UTC()
	for _, existing := range r.s.st.messages {
		if existing.ConversationID == m.ConversationID && existing.CreatedAt.After(now) {
			now = existing.CreatedAt
		}
	}
	r.s.st.seq++
	m.Seq = r.s.st.seq
	m.CreatedAt = now
	r.s.st.messages = append(r.s.st.messages, m)
	return m, nil
}

func (r conversationRepo) GetMessage(_ context.Context, conversationID, messageID uuid.UUID) (conversation.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.st.messages {
		if m.ConversationID == conversationID && m.ID == messageID {
			return m, nil
		}
	}
	return conversation.Message{}, conversation.ErrMessageNotFound
}

func (r conversationRepo) ListMessages(_ context.Context, conversationID uuid.UUID, after *conversation.Message) ([]conversation.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]conversation.Message, 0)
	for _, m := range r.s.st.messages {
		if m.ConversationID != conversationID {
			continue
		}
		if after != nil && !laterThan(m, *after) {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, k int) bool { return laterThan(out[k], out[i]) })
	return out, nil
}

func laterThan(a, b conversation.Message) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.Seq > b.Seq
	}
	return a.CreatedAt.After(b.CreatedAt)
}

type notificationRepo struct{ s *Store }

func (r notificationRepo) Create(_ context.Context, n notification.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.notifications[n.ID] = n
	return nil
}

func (r notificationRepo) List(_ context.Context, userID uuid.UUID, limit int) ([]notification.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]notification.Notification, 0)
	for _, n := range r.s.st.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r notificationRepo) MarkRead(_ context.Context, userID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.st.notifications[id]
	if !ok || n.UserID != userID {
		return notification.ErrNotFound
	}
	n.Read = true
	r.s.st.notifications[id] = n
	return nil
}

func (r notificationRepo) MarkAllRead(_ context.Context, userID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var changed int64
	for id, n := range r.s.st.notifications {
		if n.UserID == userID && !n.Read {
			n.Read = true
			r.s.st.notifications[id] = n
			changed++
		}
	}
	return changed, nil
}

type ratingRepo struct{ s *Store }

func (r ratingRepo) Create(_ context.Context, rt rating.Rating) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.st.ratings {
		if existing.JobID == rt.JobID && existing.RaterID == rt.RaterID && existing.RatedID == rt.RatedID {
			return rating.ErrDuplicate
		}
	}
	r.s.st.ratings = append(r.s.st.ratings, rt)
	return nil
}

func (r ratingRepo) ListForUser(_ context.Context, ratedID uuid.UUID) ([]rating.Rating, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]rating.Rating, 0)
	for _, rt := range r.s.st.ratings {
		if rt.RatedID == ratedID {
			out = append(out, rt)
		}
	}
	sort.SliceStable(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out, nil
}

func (r ratingRepo) Recompute(_ context.Context, ratedID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.st.users[ratedID]
	if !ok {
		return nil
	}
	var sum float64
	var n int
	for _, rt := range r.s.st.ratings {
		if rt.RatedID == ratedID {
			sum += rt.Score
			n++
		}
	}
	u.TotalRatings = n
	u.Rating = 0
	if n > 0 {
		u.Rating = math.Round(sum/float64(n)*100) / 100
	}
	r.s.st.users[ratedID] = u
	return nil
}

type savedJobRepo struct{ s *Store }

func (r savedJobRepo) Save(_ context.Context, userID, jobID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := savedKey{userID, jobID}
	if _, ok := r.s.st.saved[k]; ok {
		return savedjob.ErrAlreadySaved
	}
	r.s.st.saved[k] = time.Now().UTC()
	return nil
}

func (r savedJobRepo) Delete(_ context.Context, userID, jobID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := savedKey{userID, jobID}
	if _, ok := r.s.st.saved[k]; !ok {
		return savedjob.ErrNotFound
	}
	delete(r.s.st.saved, k)
	return nil
}

func (r savedJobRepo) ListJobIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	type entry struct {
		id uuid.UUID
		at time.Time
	}
	var entries []entry
	for k, at := range r.s.st.saved {
		if k.userID == userID {
			entries = append(entries, entry{k.jobID, at})
		}
	}
	sort.Slice(entries, func(i, k int) bool { return entries[i].at.After(entries[k].at) })
	out := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.id)
	}
	return out, nil
}

type reportRepo struct{ s *Store }

func (r reportRepo) ApplicationCounts(_ context.Context, sc report.Scope) (report.ApplicationCounts, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var c report.ApplicationCounts
	for _, a := range r.s.st.applications {
		if sc.ApplicantID != nil && a.ApplicantID != *sc.ApplicantID {
			continue
		}
		if sc.EmployerID != nil && a.EmployerID != *sc.EmployerID {
			continue
		}
		c.Total++
		switch a.Status {
		case application.StatusPending:
			c.Pending++
		case application.StatusAccepted:
			c.Accepted++
		case application.StatusRejected:
			c.Rejected++
		case application.StatusCompleted:
			c.Completed++
			c.CompletedSalary += r.s.st.jobs[a.JobID].Salary
		}
	}
	return c, nil
}

func (r reportRepo) JobCounts(_ context.Context, employerID *uuid.UUID) (report.JobCounts, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var c report.JobCounts
	for _, j := range r.s.st.jobs {
		if employerID != nil && j.EmployerID != *employerID {
			continue
		}
		c.Total++
		if j.Status == job.StatusActive {
			c.Active++
		}
	}
	return c, nil
}

func (r reportRepo) UserCounts(_ context.Context) (report.UserCounts, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var c report.UserCounts
	for _, u := range r.s.st.users {
		c.Total++
		switch u.Role {
		case user.RoleEmployer:
			c.Employers++
		case user.RoleJobSeeker:
			c.JobSeekers++
		}
	}
	return c, nil
}

// ErrInjected is a convenience failure for EnsureErr.
var ErrInjected = errors.New("injected failure")
