package dto

import (
	"time"

	"jobni/internal/domain/user"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone"`
	Role         user.Role `json:"role"`
	CompanyName  *string   `json:"company_name"`
	Rating       float64   `json:"rating"`
	TotalRatings int       `json:"total_ratings"`
	Skills       []string  `json:"skills"`
	CreatedAt    time.Time `json:"created_at"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	User         UserResponse `json:"user"`
}

type RegisterRequest struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	Phone       *string  `json:"phone"`
	Role        string   `json:"role"`
	CompanyName *string  `json:"company_name"`
	Skills      []string `json:"skills"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type UpdateProfileRequest struct {
	Name        *string   `json:"name"`
	Phone       *string   `json:"phone"`
	CompanyName *string   `json:"company_name"`
	Skills      *[]string `json:"skills"`
}

func NewUserResponse(u user.User) UserResponse {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		Role:         u.Role,
		CompanyName:  u.CompanyName,
		Rating:       u.Rating,
		TotalRatings: u.TotalRatings,
		Skills:       skills,
		CreatedAt:    u.CreatedAt,
	}
}

func NewUserResponses(in []user.User) []UserResponse {
	out := make([]UserResponse, 0, len(in))
	for _, u := range in {
		out = append(out, NewUserResponse(u))
	}
	return out
}
