package dto

import (
	"time"

	"github.com/echonet/echonet/internal/domain"
)

// RegisterRequest is the full registration form.
type RegisterRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Bio      string `json:"bio"`
	Location string `json:"location"`
	Website  string `json:"website"`
}

// SimpleRegisterRequest payload for email-only registration.
type SimpleRegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for email login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UsernameLoginRequest payload for username login.
type UsernameLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UpdateProfileRequest lists editable profile fields; omitted fields are kept.
type UpdateProfileRequest struct {
	Name            *string `json:"name"`
	Bio             *string `json:"bio"`
	Location        *string `json:"location"`
	Website         *string `json:"website"`
	ProfileImageURL *string `json:"profile_image_url"`
}

// UserResponse is the public view of an account. The password hash is never exposed.
type UserResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	Bio             string    `json:"bio,omitempty"`
	ProfileImageURL string    `json:"profile_image_url,omitempty"`
	Location        string    `json:"location,omitempty"`
	Website         string    `json:"website,omitempty"`
	Role            string    `json:"role"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewUserResponse maps an account to its public view.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Name:            u.Name,
		Username:        u.Username,
		Email:           u.Email,
		Bio:             u.Bio,
		ProfileImageURL: u.ProfileImageURL,
		Location:        u.Location,
		Website:         u.Website,
		Role:            string(u.Role),
		IsActive:        u.IsActive,
		CreatedAt:       u.CreatedAt,
	}
}

// NewUserResponses maps a list of accounts.
func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
