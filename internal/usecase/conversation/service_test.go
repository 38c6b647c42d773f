package conversation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"jobni/internal/domain/apperr"
	"jobni/internal/domain/conversation"
	"jobni/internal/domain/job"
	"jobni/internal/domain/notification"
	"jobni/internal/domain/user"
	"jobni/internal/testutil/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPublisher struct {
	mu sync.Mutex
	n  int
}

func (p *countingPublisher) PublishMessage(context.Context, conversation.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.n++
	return nil
}

type fixture struct {
	svc       *Service
	st        *memstore.Store
	pub       *countingPublisher
	employer  user.User
	candidate user.User
	admin     user.User
	outsider  user.User
	conv      conversation.Conversation
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	st := memstore.New()
	pub := &countingPublisher{}
	company := "Brew House"
	f := fixture{svc: NewService(st, pub), st: st, pub: pub}
	f.employer = st.SeedUser(user.User{Name: "Huda", Email: "huda@brew.sa", Role: user.RoleEmployer, CompanyName: &company})
	f.candidate = st.SeedUser(user.User{Name: "Faisal", Email: "faisal@mail.sa", Role: user.RoleJobSeeker})
	f.admin = st.SeedUser(user.User{Name: "Admin", Email: "admin@jobni.sa", Role: user.RoleAdmin})
	f.outsider = st.SeedUser(user.User{Name: "Reem", Email: "reem@mail.sa", Role: user.RoleJobSeeker})
	j := st.SeedJob(job.Job{EmployerID: f.employer.ID, Title: "Barista", Category: job.CategoryHospitality, DurationType: job.DurationHours8})

	c, err := f.svc.Ensure(context.Background(), j.ID, f.employer.ID, f.candidate.ID)
	require.NoError(t, err)
	f.conv = c
	return f
}

func TestEnsure_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make([]uuid.UUID, 10)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := f.svc.Ensure(ctx, f.conv.JobID, f.employer.ID, f.candidate.ID)
			if assert.NoError(t, err) {
				ids[i] = c.ID
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, f.conv.ID, id)
	}
	assert.Len(t, f.st.ConversationsFor(f.conv.JobID, f.candidate.ID), 1)
}

func TestPostAndList_RoundTripInOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	texts := []string{"Hello, when can you start?", "Tomorrow at 9", "Great, see you then"}
	senders := []user.User{f.employer, f.candidate, f.employer}
	for i, text := range texts {
		_, err := f.svc.Post(ctx, senders[i].Actor(), f.conv.ID, "  "+text+"\n")
		require.NoError(t, err)
	}

	msgs, err := f.svc.ListMessages(ctx, f.candidate.Actor(), f.conv.ID, nil)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	for i, m := range msgs {
		assert.Equal(t, texts[i], m.Text)
		require.NotNil(t, m.SenderID)
		assert.Equal(t, senders[i].ID, *m.SenderID)
		if i > 0 {
			assert.False(t, m.CreatedAt.Before(msgs[i-1].CreatedAt))
		}
	}
	assert.Equal(t, 3, f.pub.n)

	tail, err := f.svc.ListMessages(ctx, f.employer.Actor(), f.conv.ID, &msgs[0].ID)
	require.NoError(t, err)
	require.Len(t, tail, 2)
	assert.Equal(t, msgs[1].ID, tail[0].ID)

	none, err := f.svc.ListMessages(ctx, f.employer.Actor(), f.conv.ID, &msgs[2].ID)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = f.svc.ListMessages(ctx, f.employer.Actor(), f.conv.ID, ptr(uuid.New()))
	assert.True(t, errors.Is(err, apperr.ErrInvalid))
}

func TestPost_NotifiesCounterpart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Post(ctx, f.candidate.Actor(), f.conv.ID, "Is parking available?")
	require.NoError(t, err)

	notes := f.st.NotificationsFor(f.employer.ID)
	require.Len(t, notes, 1)
	assert.Equal(t, notification.TypeNewMessage, notes[0].Type)
	assert.Contains(t, notes[0].Message, "Faisal")
	assert.Empty(t, f.st.NotificationsFor(f.candidate.ID))
}

func TestPost_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Post(ctx, f.outsider.Actor(), f.conv.ID, "hi")
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	_, err = f.svc.Post(ctx, f.admin.Actor(), f.conv.ID, "hi")
	assert.True(t, errors.Is(err, apperr.ErrForbidden), "admins read but do not write")

	_, err = f.svc.Post(ctx, f.employer.Actor(), f.conv.ID, " \t\n ")
	assert.True(t, errors.Is(err, apperr.ErrInvalid))

	_, err = f.svc.Post(ctx, f.employer.Actor(), f.conv.ID, strings.Repeat("a", MaxMessageLength+1))
	assert.True(t, errors.Is(err, apperr.ErrInvalid))

	_, err = f.svc.Post(ctx, f.employer.Actor(), uuid.New(), "hi")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	msgs, err := f.svc.ListMessages(ctx, f.admin.Actor(), f.conv.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, msgs)
	assert.Zero(t, f.pub.n)
}

func TestListMessages_Access(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.ListMessages(ctx, f.outsider.Actor(), f.conv.ID, nil)
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	_, err = f.svc.ListMessages(ctx, f.admin.Actor(), uuid.New(), nil)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	assert.NoError(t, f.svc.CanWatch(ctx, f.admin.Actor(), f.conv.ID))
	assert.NoError(t, f.svc.CanWatch(ctx, f.candidate.Actor(), f.conv.ID))
}

func TestPost_ConcurrentAppendsKeepOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sender := f.employer
			if i%2 == 1 {
				sender = f.candidate
			}
			_, err := f.svc.Post(ctx, sender.Actor(), f.conv.ID, "msg")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	msgs, err := f.svc.ListMessages(ctx, f.employer.Actor(), f.conv.ID, nil)
	require.NoError(t, err)
	require.Len(t, msgs, 20)
	for i := 1; i < len(msgs); i++ {
		assert.False(t, msgs[i].CreatedAt.Before(msgs[i-1].CreatedAt))
		assert.Greater(t, msgs[i].Seq, msgs[i-1].Seq)
	}
}

func TestList_ScopedByRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Post(ctx, f.employer.Actor(), f.conv.ID, "Welcome aboard")
	require.NoError(t, err)

	mine, err := f.svc.List(ctx, f.candidate.Actor())
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Barista", mine[0].JobTitle)
	assert.Equal(t, "Huda", mine[0].EmployerName)
	require.NotNil(t, mine[0].LastMessage)
	assert.Equal(t, "Welcome aboard", *mine[0].LastMessage)

	theirs, err := f.svc.List(ctx, f.outsider.Actor())
	require.NoError(t, err)
	assert.Empty(t, theirs)

	all, err := f.svc.List(ctx, f.admin.Actor())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func ptr[T any](v T) *T { return &v }
