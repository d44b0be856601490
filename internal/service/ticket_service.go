package service

import (
	"context"
	"errors"
	"strings"
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

// TicketService coordinates the maintenance ticket workflow. Status is only
// ever written through the lifecycle machine; the persisted row is the
// authoritative snapshot returned to callers.
type TicketService struct {
	tickets    repository.TicketRepository
	comments   repository.CommentRepository
	units      repository.UnitRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo  repository.TicketRepository
	CommentRepo repository.CommentRepository
	UnitRepo    repository.UnitRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
	Now         func() time.Time
}

// TicketCreateInput describes the ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Category    domain.TicketCategory
	Priority    domain.TicketPriority
	Department  string
	Floor       string
	Room        string
	Bed         string
	Attachments []string
}

// TicketListFilter describes listing filters; listing is unit-scoped by the
// caller's session.
type TicketListFilter struct {
	Statuses   []domain.TicketStatus
	Priorities []domain.TicketPriority
	Categories []domain.TicketCategory
	SearchTerm *string
	Mine       bool
	Assigned   bool
	Limit      int
	Offset     int
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		comments:   deps.CommentRepo,
		units:      deps.UnitRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        now,
	}
}

// CreateTicket validates and persists a new ticket for the caller's unit.
func (s *TicketService) CreateTicket(ctx context.Context, actor *domain.User, input TicketCreateInput) (*domain.Ticket, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}

	allowedDepartments := domain.DefaultDepartments
	if unit, err := s.units.GetByID(ctx, actor.UnitID); err == nil && len(unit.Departments) > 0 {
		allowedDepartments = unit.Departments
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	ticket, err := domain.NewTicket(domain.TicketInput{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Priority:    input.Priority,
		Department:  input.Department,
		Floor:       input.Floor,
		Room:        input.Room,
		Bed:         input.Bed,
		CreatedBy:   actor.ID,
		UnitID:      actor.UnitID,
		Attachments: input.Attachments,
	}, allowedDepartments, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		UnitID:   ticket.UnitID,
		Actor:    events.Actor{UserID: actor.ID, Role: actor.Role},
		Payload: events.TicketCreatedPayload{
			Title:      ticket.Title,
			Category:   ticket.Category,
			Priority:   ticket.Priority,
			Department: ticket.Department,
		},
	})
	return ticket, nil
}

// ListTickets returns tickets for the caller's unit.
func (s *TicketService) ListTickets(ctx context.Context, actor *domain.User, filter TicketListFilter) ([]domain.Ticket, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	repoFilter := repository.TicketFilter{
		UnitID:     actor.UnitID,
		Statuses:   filter.Statuses,
		Priorities: filter.Priorities,
		Categories: filter.Categories,
		SearchTerm: filter.SearchTerm,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}
	if filter.Mine {
		createdBy := actor.ID
		repoFilter.CreatedBy = &createdBy
	}
	if filter.Assigned {
		assignee := actor.ID
		repoFilter.AssigneeID = &assignee
	}
	tickets, err := s.tickets.ListWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// GetTicket fetches one ticket with its comment trail, enforcing unit scope.
func (s *TicketService) GetTicket(ctx context.Context, actor *domain.User, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.loadScoped(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	ticket.Comments = comments
	return ticket, nil
}

// AvailableActions returns the gate's view of what the caller may do with
// the ticket right now.
func (s *TicketService) AvailableActions(ctx context.Context, actor *domain.User, ticketID string) ([]workflow.Action, error) {
	ticket, err := s.loadScoped(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}
	return workflow.AvailableActions(actor.Role, ticket.Status, ticket.IsAssignedTo(actor.ID)), nil
}

// Transition drives one lifecycle edge and returns the authoritative
// post-mutation snapshot. An optional note is appended as a comment on
// success.
func (s *TicketService) Transition(ctx context.Context, actor *domain.User, ticketID string, target domain.TicketStatus, note string) (*domain.Ticket, error) {
	ticket, err := s.loadScoped(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}

	next, err := workflow.Transition(*ticket, target, workflow.Actor{ID: actor.ID, Role: actor.Role}, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.tickets.Update(ctx, &next); err != nil {
		return nil, apperrors.MapError(err)
	}
	if strings.TrimSpace(note) != "" {
		comment := &domain.Comment{
			TicketID:  next.ID,
			AuthorID:  actor.ID,
			Body:      strings.TrimSpace(note),
			Internal:  true,
			CreatedAt: s.now(),
		}
		// The status change is already durable; the note is best-effort.
		if err := s.comments.Create(ctx, comment); err != nil {
			s.logger.Warn("transition note not recorded",
				zap.String("ticket_id", next.ID), zap.Error(err))
		}
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: next.ID,
		UnitID:   next.UnitID,
		Actor:    events.Actor{UserID: actor.ID, Role: actor.Role},
		Payload: events.TicketStatusChangedPayload{
			OldStatus: ticket.Status,
			NewStatus: next.Status,
			Comment:   strings.TrimSpace(note),
		},
	})
	return &next, nil
}

// ApplyAction resolves a gate action to its lifecycle edge and drives it.
// Actions that do not map to an edge are rejected here; comments go through
// AddComment.
func (s *TicketService) ApplyAction(ctx context.Context, actor *domain.User, ticketID string, action workflow.Action, note string) (*domain.Ticket, error) {
	edge, ok := workflow.EdgeForAction(action)
	if !ok {
		return nil, apperrors.NewValidationError("action has no transition", map[string]any{"action": string(action)})
	}
	return s.Transition(ctx, actor, ticketID, edge.To, note)
}

// AddComment appends to the ticket's comment trail. Terminal tickets are
// read-only, matching the action gate.
func (s *TicketService) AddComment(ctx context.Context, actor *domain.User, ticketID, body string, internal bool) (*domain.Comment, error) {
	ticket, err := s.loadScoped(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status.IsTerminal() {
		return nil, apperrors.NewConflict("ticket is closed for comments", map[string]any{"status": string(ticket.Status)})
	}
	if strings.TrimSpace(body) == "" {
		return nil, apperrors.NewValidationError("comment body required", nil)
	}

	comment := &domain.Comment{
		TicketID:  ticket.ID,
		AuthorID:  actor.ID,
		Body:      strings.TrimSpace(body),
		Internal:  internal,
		CreatedAt: s.now(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketCommentAdded,
		TicketID: ticket.ID,
		UnitID:   ticket.UnitID,
		Actor:    events.Actor{UserID: actor.ID, Role: actor.Role},
		Payload: events.TicketCommentAddedPayload{
			CommentID:   comment.ID,
			AuthorID:    comment.AuthorID,
			Internal:    comment.Internal,
			BodyPreview: preview(comment.Body, 120),
		},
	})
	return comment, nil
}

func (s *TicketService) loadScoped(ctx context.Context, actor *domain.User, ticketID string) (*domain.Ticket, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
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
	return ticket, nil
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func preview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
