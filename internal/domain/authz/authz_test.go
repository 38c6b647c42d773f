package authz

import (
	"errors"
	"testing"

	"jobni/internal/domain/apperr"
	"jobni/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequireRole(t *testing.T) {
	seeker := user.Actor{ID: uuid.New(), Role: user.RoleJobSeeker}

	assert.NoError(t, RequireRole(seeker, "x", user.RoleJobSeeker))
	err := RequireRole(seeker, "Only employers can post jobs", user.RoleEmployer, user.RoleAdmin)
	assert.True(t, errors.Is(err, apperr.ErrForbidden))
	assert.Equal(t, "Only employers can post jobs", apperr.Detail(err))
}

func TestRequireOwner(t *testing.T) {
	owner := uuid.New()
	employer := user.Actor{ID: owner, Role: user.RoleEmployer}
	other := user.Actor{ID: uuid.New(), Role: user.RoleEmployer}
	admin := user.Actor{ID: uuid.New(), Role: user.RoleAdmin}

	assert.NoError(t, RequireOwner(employer, owner, "x"))
	assert.NoError(t, RequireOwner(admin, owner, "x"))
	assert.True(t, errors.Is(RequireOwner(other, owner, "x"), apperr.ErrForbidden))
	assert.False(t, IsOwnerOrAdmin(user.Actor{}, uuid.Nil))
}

func TestIsParty(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	assert.True(t, IsParty(user.Actor{ID: b, Role: user.RoleJobSeeker}, a, b))
	assert.False(t, IsParty(user.Actor{ID: uuid.New(), Role: user.RoleEmployer}, a, b))
	assert.True(t, IsParty(user.Actor{ID: uuid.New(), Role: user.RoleAdmin}, a, b))
}
