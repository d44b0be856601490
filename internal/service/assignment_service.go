package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/careops/hospitalops/internal/domain"
	"github.com/careops/hospitalops/internal/events"
	"github.com/careops/hospitalops/internal/repository"
	"github.com/careops/hospitalops/internal/workflow"
	apperrors "github.com/careops/hospitalops/pkg/util/errorutil"
)

// AssignmentService delegates tickets to employees. The assignment fields
// and the status edge are written as one snapshot; a failed precondition
// leaves the ticket untouched.
type AssignmentService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	equipment  repository.EquipmentRepository
	comments   repository.CommentRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// AssignmentDependencies bundles repositories.
type AssignmentDependencies struct {
	TicketRepo    repository.TicketRepository
	UserRepo      repository.UserRepository
	EquipmentRepo repository.EquipmentRepository
	CommentRepo   repository.CommentRepository
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
	Now           func() time.Time
}

// AssignmentInput is the delegation payload.
type AssignmentInput struct {
	AssigneeID           string
	Deadline             time.Time
	RequiredEquipmentIDs []string
	EquipmentNote        string
	ExtraCost            float64
}

// NewAssignmentService creates the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		equipment:  deps.EquipmentRepo,
		comments:   deps.CommentRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        now,
	}
}

// Assign delegates a ticket to an employee with a deadline and optional
// equipment/cost annotations. Open and Pending tickets are assignable;
// reassigning an In Progress ticket to a different person is permitted for
// the same manager/admin tier and records the prior assignee in the comment
// trail.
func (s *AssignmentService) Assign(ctx context.Context, actor *domain.User, ticketID string, input AssignmentInput) (*domain.Ticket, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if !actor.Role.AtLeastManager() {
		return nil, apperrors.NewForbidden("insufficient role for assignment")
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	if ticket.UnitID != actor.UnitID {
		return nil, apperrors.NewForbidden("ticket belongs to another unit")
	}

	now := s.now()
	if err := s.checkInput(ctx, ticket, input, now); err != nil {
		return nil, err
	}

	reassigned := false
	priorAssignee := ""
	next := ticket.WithAssignment(domain.Assignment{
		AssigneeID:           input.AssigneeID,
		Deadline:             input.Deadline,
		RequiredEquipmentIDs: input.RequiredEquipmentIDs,
		EquipmentNote:        input.EquipmentNote,
		ExtraCost:            input.ExtraCost,
	}, now)

	switch ticket.Status {
	case domain.TicketStatusOpen, domain.TicketStatusPending:
		next, err = workflow.Transition(next, domain.TicketStatusInProgress,
			workflow.Actor{ID: actor.ID, Role: actor.Role}, now)
		if err != nil {
			return nil, err
		}
	case domain.TicketStatusInProgress:
		// Reassignment keeps the status; only the assignment fields move.
		if ticket.AssigneeID == nil || *ticket.AssigneeID == input.AssigneeID {
			return nil, apperrors.NewAssignmentError("ticket already assigned to this employee", nil)
		}
		reassigned = true
		priorAssignee = *ticket.AssigneeID
	default:
		return nil, apperrors.NewAssignmentError("ticket not in an assignable status", map[string]any{
			"status": string(ticket.Status),
		})
	}

	if err := s.tickets.Update(ctx, &next); err != nil {
		return nil, apperrors.MapError(err)
	}
	if reassigned {
		comment := &domain.Comment{
			TicketID:  next.ID,
			AuthorID:  actor.ID,
			Body:      fmt.Sprintf("Reassigned from %s to %s", priorAssignee, input.AssigneeID),
			Internal:  true,
			CreatedAt: now,
		}
		// Assignment fields are already durable; the assigned event below
		// still names the new assignee if this note is lost.
		if err := s.comments.Create(ctx, comment); err != nil {
			s.logger.Warn("reassignment trail note not recorded",
				zap.String("ticket_id", next.ID), zap.Error(err))
		}
	}

	s.publishAssigned(ctx, actor, &next, input, reassigned)
	return &next, nil
}

// checkInput verifies all preconditions before anything is written.
func (s *AssignmentService) checkInput(ctx context.Context, ticket *domain.Ticket, input AssignmentInput, now time.Time) error {
	if input.AssigneeID == "" {
		return apperrors.NewAssignmentError("assignee required", nil)
	}
	if input.Deadline.IsZero() {
		return apperrors.NewAssignmentError("deadline required", nil)
	}
	if input.Deadline.Before(now.Truncate(24 * time.Hour)) {
		return apperrors.NewAssignmentError("deadline is in the past", map[string]any{
			"deadline": input.Deadline,
		})
	}

	assignee, err := s.users.GetByID(ctx, input.AssigneeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewAssignmentError("assignee not found", map[string]any{"assignee_id": input.AssigneeID})
		}
		return apperrors.MapError(err)
	}
	if !assignee.Active {
		return apperrors.NewAssignmentError("assignee inactive", map[string]any{"assignee_id": assignee.ID})
	}
	if assignee.Role != domain.RoleEmployee {
		return apperrors.NewAssignmentError("assignee must be an employee", map[string]any{"role": string(assignee.Role)})
	}
	if assignee.UnitID != ticket.UnitID {
		return apperrors.NewAssignmentError("assignee outside ticket unit", map[string]any{"assignee_id": assignee.ID})
	}

	for _, equipmentID := range input.RequiredEquipmentIDs {
		equipment, err := s.equipment.GetByID(ctx, equipmentID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewAssignmentError("required equipment not found", map[string]any{"equipment_id": equipmentID})
			}
			return apperrors.MapError(err)
		}
		if equipment.UnitID != ticket.UnitID {
			return apperrors.NewAssignmentError("required equipment outside ticket unit", map[string]any{"equipment_id": equipmentID})
		}
	}
	return nil
}

func (s *AssignmentService) publishAssigned(ctx context.Context, actor *domain.User, ticket *domain.Ticket, input AssignmentInput, reassigned bool) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketAssigned,
		TicketID:  ticket.ID,
		UnitID:    ticket.UnitID,
		Actor:     events.Actor{UserID: actor.ID, Role: actor.Role},
		Timestamp: s.now(),
		Payload: events.TicketAssignedPayload{
			TicketID:   ticket.ID,
			AssigneeID: input.AssigneeID,
			Deadline:   input.Deadline,
			Reassigned: reassigned,
		},
	}
	_ = s.dispatcher.Publish(ctx, event)
}
