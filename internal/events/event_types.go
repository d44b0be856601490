package events

import (
	"time"

	"github.com/careops/hospitalops/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketAssigned      EventType = "ticket_assigned"
	EventTicketCommentAdded  EventType = "ticket_comment_added"
)

// Actor encapsulates who caused an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	UnitID    string      `json:"unit_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Title      string                `json:"title"`
	Category   domain.TicketCategory `json:"category"`
	Priority   domain.TicketPriority `json:"priority"`
	Department string                `json:"department"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
	Comment   string              `json:"comment,omitempty"`
}

// TicketAssignedPayload is the fire-and-forget notification contract for
// delegated work.
type TicketAssignedPayload struct {
	TicketID   string    `json:"ticket_id"`
	AssigneeID string    `json:"assignee_id"`
	Deadline   time.Time `json:"deadline"`
	Reassigned bool      `json:"reassigned,omitempty"`
}

// TicketCommentAddedPayload payload.
type TicketCommentAddedPayload struct {
	CommentID   string `json:"comment_id"`
	AuthorID    string `json:"author_id"`
	Internal    bool   `json:"internal"`
	BodyPreview string `json:"body_preview"`
}
