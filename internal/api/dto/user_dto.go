package dto

import (
	"time"

	"github.com/careops/hospitalops/internal/domain"
)

// RegisterRequest payload for new operator accounts.
type RegisterRequest struct {
	Name       string      `json:"name" validate:"required"`
	Email      string      `json:"email" validate:"required,email"`
	Password   string      `json:"password" validate:"required,min=8"`
	Role       domain.Role `json:"role" validate:"required"`
	Department string      `json:"department"`
	UnitID     string      `json:"unit_id" validate:"required"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse is the public account shape.
type UserResponse struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Role       domain.Role `json:"role"`
	Department string      `json:"department,omitempty"`
	UnitID     string      `json:"unit_id"`
	Active     bool        `json:"active"`
}
