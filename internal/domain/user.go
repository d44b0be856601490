package domain

import "time"

// Role enumerates the three operator tiers. Triage is gated at admin or
// manager, execution at the assignee, verification at manager or admin.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// IsValid reports whether the role is a known value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// AtLeastManager reports whether the role sits in the triage/verification tier.
func (r Role) AtLeastManager() bool {
	return r == RoleAdmin || r == RoleManager
}

// User is a hospital operator. Every user belongs to exactly one unit.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Department   string
	UnitID       string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
