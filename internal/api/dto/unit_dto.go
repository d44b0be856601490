package dto

import "time"

// CreateUnitRequest registers a hospital unit.
type CreateUnitRequest struct {
	Name        string   `json:"name" validate:"required"`
	Address     string   `json:"address"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email" validate:"omitempty,email"`
	Departments []string `json:"departments"`
}

// UnitResponse is the unit picker entry.
type UnitResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Departments []string  `json:"departments"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
