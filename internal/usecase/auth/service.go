package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"jobni/internal/domain/apperr"
	"jobni/internal/domain/user"
	"jobni/internal/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	Phone       *string
	Role        user.Role
	CompanyName *string
	Skills      []string
}

type LoginInput struct {
	Email    string
	Password string
}

type Tokens struct {
	AccessToken  string
	RefreshToken string
}

type Service struct {
	users  user.Repository
	tokens jwt.Service
	now    func() time.Time
}

func NewService(users user.Repository, tokens jwt.Service) *Service {
	return &Service{users: users, tokens: tokens, now: time.Now}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, Tokens, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return user.User{}, Tokens{}, apperr.New(apperr.ErrInvalid, "Name is required")
	}
	email := normalizeEmail(in.Email)
	if email == "" {
		return user.User{}, Tokens{}, apperr.New(apperr.ErrInvalid, "A valid email is required")
	}
	if len(strings.TrimSpace(in.Password)) < minPasswordLength {
		return user.User{}, Tokens{}, apperr.New(apperr.ErrInvalid, "Password must be at least 6 characters")
	}

	role := in.Role
	if role == "" {
		role = user.RoleJobSeeker
	}
	if !role.Valid() {
		return user.User{}, Tokens{}, apperr.New(apperr.ErrInvalid, "Unknown role")
	}
	if role == user.RoleAdmin {
		return user.User{}, Tokens{}, apperr.New(apperr.ErrForbidden, "Admin accounts cannot be self-registered")
	}

	company := trimmedOrNil(in.CompanyName)
	if role == user.RoleEmployer && company == nil {
		return user.User{}, Tokens{}, apperr.New(apperr.ErrInvalid, "Company name is required for employers")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, Tokens{}, apperr.Internal(err)
	}

	u := user.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        trimmedOrNil(in.Phone),
		Role:         role,
		CompanyName:  company,
		Skills:       cleanList(in.Skills),
		CreatedAt:    s.now().UTC(),
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return user.User{}, Tokens{}, apperr.New(apperr.ErrConflict, "Email already registered")
		}
		return user.User{}, Tokens{}, apperr.Internal(err)
	}

	tokens, err := s.issue(u)
	if err != nil {
		return user.User{}, Tokens{}, err
	}
	return sanitizeUser(u), tokens, nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, Tokens, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, Tokens{}, errInvalidCredentials()
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, Tokens{}, errInvalidCredentials()
		}
		return user.User{}, Tokens{}, apperr.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, Tokens{}, errInvalidCredentials()
	}

	tokens, err := s.issue(u)
	if err != nil {
		return user.User{}, Tokens{}, err
	}
	return sanitizeUser(u), tokens, nil
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (user.User, Tokens, error) {
	claims, err := s.tokens.ValidateRefreshToken(strings.TrimSpace(refreshToken))
	if err != nil {
		return user.User{}, Tokens{}, tokenError(err)
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, Tokens{}, apperr.New(apperr.ErrUnauthorized, "User no longer exists")
		}
		return user.User{}, Tokens{}, apperr.Internal(err)
	}

	tokens, err := s.issue(u)
	if err != nil {
		return user.User{}, Tokens{}, err
	}
	return sanitizeUser(u), tokens, nil
}

// Authenticate resolves an access token to the actor it was issued to. The
// user row is loaded so deleted accounts stop authenticating immediately.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (user.Actor, error) {
	u, err := s.CurrentUser(ctx, accessToken)
	if err != nil {
		return user.Actor{}, err
	}
	return u.Actor(), nil
}

func (s *Service) CurrentUser(ctx context.Context, accessToken string) (user.User, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return user.User{}, apperr.New(apperr.ErrUnauthorized, "Not authenticated")
	}

	claims, err := s.tokens.ValidateAccessToken(accessToken)
	if err != nil {
		return user.User{}, tokenError(err)
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, apperr.New(apperr.ErrUnauthorized, "User not found")
		}
		return user.User{}, apperr.Internal(err)
	}
	return sanitizeUser(u), nil
}

func (s *Service) issue(u user.User) (Tokens, error) {
	access, err := s.tokens.GenerateAccessToken(u.ID, string(u.Role))
	if err != nil {
		return Tokens{}, apperr.Internal(err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(u.ID)
	if err != nil {
		return Tokens{}, apperr.Internal(err)
	}
	return Tokens{AccessToken: access, RefreshToken: refresh}, nil
}

func tokenError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return apperr.Wrap(apperr.ErrUnauthorized, "Token expired", err)
	}
	return apperr.Wrap(apperr.ErrUnauthorized, "Invalid token", err)
}

func errInvalidCredentials() error {
	return apperr.New(apperr.ErrUnauthorized, "Invalid email or password")
}

func normalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ""
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ""
	}
	return email
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
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

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
