package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobni/internal/domain/apperr"
	"jobni/internal/domain/notification"
	"jobni/internal/domain/user"
	"jobni/internal/testutil/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifications(t *testing.T) {
	st := memstore.New()
	s := NewService(st.Notifications())
	ctx := context.Background()

	me := user.Actor{ID: uuid.New(), Role: user.RoleJobSeeker}
	other := user.Actor{ID: uuid.New(), Role: user.RoleEmployer}
	base := time.Now().UTC()

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		n := notification.Notification{ID: uuid.New(), UserID: me.ID, Type: notification.TypeApplicationUpdate, Message: "m", CreatedAt: base.Add(time.Duration(i) * time.Second)}
		require.NoError(t, st.Notifications().Create(ctx, n))
		ids = append(ids, n.ID)
	}
	require.NoError(t, st.Notifications().Create(ctx, notification.Notification{ID: uuid.New(), UserID: other.ID, Type: notification.TypeNewApplication, CreatedAt: base}))

	list, err := s.List(ctx, me)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, ids[2], list[0].ID, "newest first")

	require.NoError(t, s.MarkRead(ctx, me, ids[0]))
	assert.True(t, errors.Is(s.MarkRead(ctx, other, ids[1]), apperr.ErrNotFound), "cannot touch another user's notification")

	n, err := s.MarkAllRead(ctx, me)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	list, err = s.List(ctx, me)
	require.NoError(t, err)
	for _, item := range list {
		assert.True(t, item.Read)
	}
}
