package domain

import "time"

// Unit is a hospital facility. Tickets, equipment and purchases are scoped
// to exactly one unit, and a user's session is bound to their unit.
type Unit struct {
	ID          string
	Name        string
	Address     string
	Phone       string
	Email       string
	Departments []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
