package domain

import (
	"strings"
	"time"

	apperrors "github.com/careops/hospitalops/pkg/util/errorutil"
)

// TicketStatus enumerates lifecycle states for maintenance tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusPending    TicketStatus = "Pending"
	TicketStatusResolved   TicketStatus = "Resolved"
	TicketStatusClosed     TicketStatus = "Closed"
	TicketStatusRejected   TicketStatus = "Rejected"
)

// AllTicketStatuses lists every status in lifecycle order.
var AllTicketStatuses = []TicketStatus{
	TicketStatusOpen,
	TicketStatusInProgress,
	TicketStatusPending,
	TicketStatusResolved,
	TicketStatusClosed,
	TicketStatusRejected,
}

// IsTerminal reports whether no further transitions exist from the status.
func (s TicketStatus) IsTerminal() bool {
	return s == TicketStatusClosed || s == TicketStatusRejected
}

// IsValid reports whether the status is part of the closed enumeration.
func (s TicketStatus) IsValid() bool {
	for _, candidate := range AllTicketStatuses {
		if s == candidate {
			return true
		}
	}
	return false
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "Low"
	TicketPriorityMedium   TicketPriority = "Medium"
	TicketPriorityHigh     TicketPriority = "High"
	TicketPriorityCritical TicketPriority = "Critical"
)

// IsValid reports whether the priority is a known value.
func (p TicketPriority) IsValid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityCritical:
		return true
	}
	return false
}

// TicketCategory enumerates the kinds of service requests a ticket can carry.
type TicketCategory string

const (
	CategoryTechnicalIssue     TicketCategory = "Technical Issue"
	CategorySoftwareRequest    TicketCategory = "Software Request"
	CategoryAccessRequest      TicketCategory = "Access Request"
	CategoryEquipmentIssue     TicketCategory = "Equipment Issue"
	CategoryMaintenanceRequest TicketCategory = "Maintenance Request"
	CategoryBiomedicalRequest  TicketCategory = "Biomedical Request"
	CategoryOther              TicketCategory = "Other"
)

// IsValid reports whether the category is a known value.
func (c TicketCategory) IsValid() bool {
	switch c {
	case CategoryTechnicalIssue, CategorySoftwareRequest, CategoryAccessRequest,
		CategoryEquipmentIssue, CategoryMaintenanceRequest, CategoryBiomedicalRequest, CategoryOther:
		return true
	}
	return false
}

// DefaultDepartments is the accepted department set used when a unit has not
// configured its own list.
var DefaultDepartments = []string{
	"Administration",
	"Biomedical Engineering",
	"Cardiology",
	"Emergency",
	"Facilities",
	"ICU",
	"IT",
	"Laboratory",
	"Nursing",
	"Pharmacy",
	"Radiology",
	"Surgery",
}

// Assignment captures the delegation annotations written when work is handed
// to an employee. The fields are written atomically by the assignment
// workflow, never piecemeal.
type Assignment struct {
	AssigneeID           string
	Deadline             time.Time
	RequiredEquipmentIDs []string
	EquipmentNote        string
	ExtraCost            float64
}

// Ticket is the aggregate for a unit of maintenance/service work.
type Ticket struct {
	ID          string
	Title       string
	Description string
	Category    TicketCategory
	Priority    TicketPriority
	Department  string

	// Optional siting within the unit.
	Floor string
	Room  string
	Bed   string

	CreatedBy  string
	UnitID     string
	AssigneeID *string

	Deadline             *time.Time
	RequiredEquipmentIDs []string
	EquipmentNote        string
	ExtraCost            float64

	Status     TicketStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
	ResolvedAt *time.Time

	Comments    []Comment
	Attachments []string
}

// TicketInput carries the user-supplied creation fields.
type TicketInput struct {
	Title       string
	Description string
	Category    TicketCategory
	Priority    TicketPriority
	Department  string
	Floor       string
	Room        string
	Bed         string
	CreatedBy   string
	UnitID      string
	Attachments []string
}

// NewTicket validates input and produces an Open ticket. The accepted
// department set defaults to DefaultDepartments when the unit supplies none.
func NewTicket(input TicketInput, allowedDepartments []string, now time.Time) (*Ticket, error) {
	details := map[string]any{}
	if strings.TrimSpace(input.Title) == "" {
		details["title"] = "required"
	}
	if strings.TrimSpace(input.Description) == "" {
		details["description"] = "required"
	}
	if strings.TrimSpace(input.UnitID) == "" {
		details["unit_id"] = "required"
	}
	if len(allowedDepartments) == 0 {
		allowedDepartments = DefaultDepartments
	}
	if !departmentAccepted(input.Department, allowedDepartments) {
		details["department"] = "not in accepted set"
	}
	category := input.Category
	if category == "" {
		category = CategoryOther
	}
	if !category.IsValid() {
		details["category"] = "unknown category"
	}
	priority := input.Priority
	if priority == "" {
		priority = TicketPriorityMedium
	}
	if !priority.IsValid() {
		details["priority"] = "unknown priority"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid ticket", details)
	}

	return &Ticket{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Category:    category,
		Priority:    priority,
		Department:  input.Department,
		Floor:       input.Floor,
		Room:        input.Room,
		Bed:         input.Bed,
		CreatedBy:   input.CreatedBy,
		UnitID:      input.UnitID,
		Status:      TicketStatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
		Comments:    []Comment{},
		Attachments: input.Attachments,
	}, nil
}

func departmentAccepted(department string, allowed []string) bool {
	if strings.TrimSpace(department) == "" {
		return false
	}
	for _, candidate := range allowed {
		if strings.EqualFold(candidate, department) {
			return true
		}
	}
	return false
}

// WithStatus returns a snapshot with the new status and refreshed updatedAt.
// ResolvedAt is stamped exactly once, on the first entry into Resolved, and
// survives every later transition including reopen.
func (t Ticket) WithStatus(status TicketStatus, now time.Time) Ticket {
	next := t.clone()
	next.Status = status
	next.UpdatedAt = now
	if status == TicketStatusResolved && next.ResolvedAt == nil {
		stamp := now
		next.ResolvedAt = &stamp
	}
	return next
}

// WithAssignment returns a snapshot carrying the assignment fields.
func (t Ticket) WithAssignment(a Assignment, now time.Time) Ticket {
	next := t.clone()
	assignee := a.AssigneeID
	deadline := a.Deadline
	next.AssigneeID = &assignee
	next.Deadline = &deadline
	next.RequiredEquipmentIDs = append([]string(nil), a.RequiredEquipmentIDs...)
	next.EquipmentNote = a.EquipmentNote
	next.ExtraCost = a.ExtraCost
	next.UpdatedAt = now
	return next
}

// WithComment returns a snapshot with the comment appended.
func (t Ticket) WithComment(comment Comment, now time.Time) Ticket {
	next := t.clone()
	next.Comments = append(next.Comments, comment)
	next.UpdatedAt = now
	return next
}

// IsAssignedTo reports whether the ticket is assigned to the given user.
func (t Ticket) IsAssignedTo(userID string) bool {
	return t.AssigneeID != nil && *t.AssigneeID == userID
}

func (t Ticket) clone() Ticket {
	next := t
	if t.AssigneeID != nil {
		assignee := *t.AssigneeID
		next.AssigneeID = &assignee
	}
	if t.Deadline != nil {
		deadline := *t.Deadline
		next.Deadline = &deadline
	}
	if t.ResolvedAt != nil {
		resolved := *t.ResolvedAt
		next.ResolvedAt = &resolved
	}
	next.RequiredEquipmentIDs = append([]string(nil), t.RequiredEquipmentIDs...)
	next.Comments = append([]Comment(nil), t.Comments...)
	next.Attachments = append([]string(nil), t.Attachments...)
	return next
}
