// Package authz holds the single capability check used by every usecase:
// a caller may act when their role is allowed, or when they own the resource.
// Admins pass every ownership check.
package authz

import (
	"jobni/internal/domain/apperr"
	"jobni/internal/domain/user"

	"github.com/google/uuid"
)

func RequireRole(a user.Actor, detail string, roles ...user.Role) error {
	for _, r := range roles {
		if a.Role == r {
			return nil
		}
	}
	return apperr.New(apperr.ErrForbidden, detail)
}

func RequireOwner(a user.Actor, owner uuid.UUID, detail string) error {
	if IsOwnerOrAdmin(a, owner) {
		return nil
	}
	return apperr.New(apperr.ErrForbidden, detail)
}

func IsOwnerOrAdmin(a user.Actor, owner uuid.UUID) bool {
	if a.IsAdmin() {
		return true
	}
	return a.ID != uuid.Nil && a.ID == owner
}

// IsParty reports whether a is one of the given participants or an admin.
func IsParty(a user.Actor, parties ...uuid.UUID) bool {
	if a.IsAdmin() {
		return true
	}
	for _, p := range parties {
		if a.ID != uuid.Nil && a.ID == p {
			return true
		}
	}
	return false
}
