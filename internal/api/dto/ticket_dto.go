package dto

import (
	"time"

	"github.com/careops/hospitalops/internal/domain"
	"github.com/careops/hospitalops/internal/workflow"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string                `json:"title" validate:"required"`
	Description string                `json:"description" validate:"required"`
	Category    domain.TicketCategory `json:"category"`
	Priority    domain.TicketPriority `json:"priority"`
	Department  string                `json:"department" validate:"required"`
	Floor       string                `json:"floor"`
	Room        string                `json:"room"`
	Bed         string                `json:"bed"`
	Attachments []string              `json:"attachments"`
}

// TransitionRequest drives one lifecycle edge by target status.
type TransitionRequest struct {
	Status domain.TicketStatus `json:"status" validate:"required"`
	Note   string              `json:"note"`
}

// ActionRequest drives one lifecycle edge by gate action name.
type ActionRequest struct {
	Action workflow.Action `json:"action" validate:"required"`
	Note   string          `json:"note"`
}

// AssignTicketRequest is the delegation payload.
type AssignTicketRequest struct {
	AssigneeID           string    `json:"assignee_id" validate:"required"`
	Deadline             time.Time `json:"deadline" validate:"required"`
	RequiredEquipmentIDs []string  `json:"required_equipment_ids"`
	EquipmentNote        string    `json:"equipment_note"`
	ExtraCost            float64   `json:"extra_cost" validate:"gte=0"`
}

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Body     string `json:"body" validate:"required"`
	Internal bool   `json:"internal"`
}

// TicketSummary response.
type TicketSummary struct {
	ID         string                `json:"id"`
	Title      string                `json:"title"`
	Category   domain.TicketCategory `json:"category"`
	Priority   domain.TicketPriority `json:"priority"`
	Department string                `json:"department"`
	Status     domain.TicketStatus   `json:"status"`
	AssigneeID *string               `json:"assignee_id"`
	Deadline   *time.Time            `json:"deadline"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
}

// TicketDetailResponse provides full ticket info.
type TicketDetailResponse struct {
	ID                   string                `json:"id"`
	Title                string                `json:"title"`
	Description          string                `json:"description"`
	Category             domain.TicketCategory `json:"category"`
	Priority             domain.TicketPriority `json:"priority"`
	Department           string                `json:"department"`
	Floor                string                `json:"floor,omitempty"`
	Room                 string                `json:"room,omitempty"`
	Bed                  string                `json:"bed,omitempty"`
	CreatedBy            string                `json:"created_by"`
	UnitID               string                `json:"unit_id"`
	AssigneeID           *string               `json:"assignee_id"`
	Deadline             *time.Time            `json:"deadline"`
	RequiredEquipmentIDs []string              `json:"required_equipment_ids"`
	EquipmentNote        string                `json:"equipment_note,omitempty"`
	ExtraCost            float64               `json:"extra_cost"`
	Status               domain.TicketStatus   `json:"status"`
	CreatedAt            time.Time             `json:"created_at"`
	UpdatedAt            time.Time             `json:"updated_at"`
	ResolvedAt           *time.Time            `json:"resolved_at"`
	Comments             []CommentResponse     `json:"comments"`
	Attachments          []string              `json:"attachments"`
}

// CommentResponse represents one comment-trail entry.
type CommentResponse struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	Internal  bool      `json:"internal"`
	CreatedAt time.Time `json:"created_at"`
}

// ActionsResponse lists the caller's permitted actions on a ticket.
type ActionsResponse struct {
	TicketID string              `json:"ticket_id"`
	Status   domain.TicketStatus `json:"status"`
	Actions  []workflow.Action   `json:"actions"`
}
