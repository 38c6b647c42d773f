package user

import (
	"context"
	"errors"
	"testing"

	"jobni/internal/domain/apperr"
	"jobni/internal/domain/user"
	"jobni/internal/testutil/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestUpdateProfile(t *testing.T) {
	st := memstore.New()
	s := NewService(st.Users())
	ctx := context.Background()

	emp := st.SeedUser(user.User{Name: "Old", Email: "e@x.sa", Role: user.RoleEmployer, CompanyName: ptr("Co"), PasswordHash: "h"})

	got, err := s.UpdateProfile(ctx, emp.Actor(), UpdateProfileInput{
		Name:   ptr(" New Name "),
		Phone:  ptr("0500000000"),
		Skills: &[]string{"sales", " ", "arabic"},
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
	assert.Equal(t, "0500000000", *got.Phone)
	assert.Equal(t, []string{"sales", "arabic"}, got.Skills)
	assert.Equal(t, "e@x.sa", got.Email)
	assert.Empty(t, got.PasswordHash)

	_, err = s.UpdateProfile(ctx, emp.Actor(), UpdateProfileInput{CompanyName: ptr("")})
	assert.True(t, errors.Is(err, apperr.ErrInvalid))

	_, err = s.UpdateProfile(ctx, emp.Actor(), UpdateProfileInput{Name: ptr("  ")})
	assert.True(t, errors.Is(err, apperr.ErrInvalid))
}

func TestListUsers_AdminOnly(t *testing.T) {
	st := memstore.New()
	s := NewService(st.Users())
	ctx := context.Background()

	admin := st.SeedUser(user.User{Name: "Admin", Email: "admin@x.sa", Role: user.RoleAdmin, PasswordHash: "h"})
	seeker := st.SeedUser(user.User{Name: "S", Email: "s@x.sa", Role: user.RoleJobSeeker, PasswordHash: "h"})

	users, err := s.ListUsers(ctx, admin.Actor())
	require.NoError(t, err)
	assert.Len(t, users, 2)
	for _, u := range users {
		assert.Empty(t, u.PasswordHash)
	}

	_, err = s.ListUsers(ctx, seeker.Actor())
	assert.True(t, errors.Is(err, apperr.ErrForbidden))
}
