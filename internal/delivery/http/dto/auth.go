package dto

import (
	"time"

	"github.com/google/uuid"

	"recruitai/internal/domain/user"
)

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Company  string `json:"company"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	Company   string    `json:"company,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, FullName: u.FullName, Company: u.Company, CreatedAt: u.CreatedAt}
}

type SignUpResponse struct {
	User       UserResponse `json:"user"`
	RedirectTo string       `json:"redirect_to"`
}

type SessionResponse struct {
	User         UserResponse     `json:"user"`
	Profile      *ProfileResponse `json:"profile"`
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	RedirectTo   string           `json:"redirect_to"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RedirectResponse struct {
	RedirectTo string `json:"redirect_to"`
}
