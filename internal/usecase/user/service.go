package user

import (
	"context"
	"errors"
	"strings"

	"jobni/internal/domain/apperr"
	"jobni/internal/domain/authz"
	"jobni/internal/domain/user"
)

// UpdateProfileInput leaves a field untouched when it is nil. Email and role
// are not editable.
type UpdateProfileInput struct {
	Name        *string
	Phone       *string
	CompanyName *string
	Skills      *[]string
}

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) UpdateProfile(ctx context.Context, actor user.Actor, in UpdateProfileInput) (user.User, error) {
	usr, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, apperr.New(apperr.ErrUnauthorized, "User not found")
		}
		return user.User{}, apperr.Internal(err)
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return user.User{}, apperr.New(apperr.ErrInvalid, "Name cannot be empty")
		}
		usr.Name = name
	}
	if in.Phone != nil {
		usr.Phone = optional(*in.Phone)
	}
	if in.CompanyName != nil {
		usr.CompanyName = optional(*in.CompanyName)
		if usr.Role == user.RoleEmployer && usr.CompanyName == nil {
			return user.User{}, apperr.New(apperr.ErrInvalid, "Company name is required for employers")
		}
	}
	if in.Skills != nil {
		skills := make([]string, 0, len(*in.Skills))
		for _, sk := range *in.Skills {
			if sk = strings.TrimSpace(sk); sk != "" {
				skills = append(skills, sk)
			}
		}
		usr.Skills = skills
	}

	if err := s.users.UpdateProfile(ctx, usr); err != nil {
		return user.User{}, apperr.Internal(err)
	}
	return sanitizeUser(usr), nil
}

func (s *Service) ListUsers(ctx context.Context, actor user.Actor) ([]user.User, error) {
	if err := authz.RequireRole(actor, "Admin access required", user.RoleAdmin); err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	for i := range users {
		users[i] = sanitizeUser(users[i])
	}
	return users, nil
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
