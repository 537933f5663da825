package dto

import (
	"time"

	"github.com/juanjsts/game-catalog-service/internal/domain"
)

// SignUpRequest payload.
type SignUpRequest struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserRequest payload for account updates. Password is optional; when
// empty the current password is kept.
type UserRequest struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInRequest payload.
type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse carries the issued token.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Surname   string        `json:"surname"`
	Username  string        `json:"username"`
	Email     string        `json:"email"`
	Roles     []domain.Role `json:"roles"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
