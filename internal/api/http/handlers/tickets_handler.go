package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/careops/hospitalops/internal/api/dto"
	"github.com/careops/hospitalops/internal/auth"
	"github.com/careops/hospitalops/internal/domain"
	"github.com/careops/hospitalops/internal/service"
	apperrors "github.com/careops/hospitalops/pkg/util/errorutil"
)

// TicketsHandler exposes the maintenance ticket endpoints.
type TicketsHandler struct {
	tickets     *service.TicketService
	assignments *service.AssignmentService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets *service.TicketService, assignments *service.AssignmentService) *TicketsHandler {
	return &TicketsHandler{tickets: tickets, assignments: assignments}
}

// Create POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	ticket, err := h.tickets.CreateTicket(c.UserContext(), actor, service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		Department:  req.Department,
		Floor:       req.Floor,
		Room:        req.Room,
		Bed:         req.Bed,
		Attachments: req.Attachments,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// List GET /tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	tickets, err := h.tickets.ListTickets(c.UserContext(), actor, parseTicketQuery(c))
	if err != nil {
		return err
	}
	items := make([]dto.TicketSummary, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketSummary(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	ticket, err := h.tickets.GetTicket(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// Actions GET /tickets/:id/actions.
func (h *TicketsHandler) Actions(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	ticket, err := h.tickets.GetTicket(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	actions, err := h.tickets.AvailableActions(c.UserContext(), actor, ticket.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ActionsResponse{
		TicketID: ticket.ID,
		Status:   ticket.Status,
		Actions:  actions,
	}})
}

// Transition POST /tickets/:id/transition.
func (h *TicketsHandler) Transition(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	var req dto.TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	if !req.Status.IsValid() {
		return apperrors.NewValidationError("unknown status", map[string]any{"status": string(req.Status)})
	}

	ticket, err := h.tickets.Transition(c.UserContext(), actor, c.Params("id"), req.Status, req.Note)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// ApplyAction POST /tickets/:id/action.
func (h *TicketsHandler) ApplyAction(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	var req dto.ActionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	ticket, err := h.tickets.ApplyAction(c.UserContext(), actor, c.Params("id"), req.Action, req.Note)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// AddComment POST /tickets/:id/comments.
func (h *TicketsHandler) AddComment(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	comment, err := h.tickets.AddComment(c.UserContext(), actor, c.Params("id"), req.Body, req.Internal)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": commentResponse(comment)})
}

// Assign POST /tickets/:id/assign.
func (h *TicketsHandler) Assign(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	var req dto.AssignTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	ticket, err := h.assignments.Assign(c.UserContext(), actor, c.Params("id"), service.AssignmentInput{
		AssigneeID:           req.AssigneeID,
		Deadline:             req.Deadline,
		RequiredEquipmentIDs: req.RequiredEquipmentIDs,
		EquipmentNote:        req.EquipmentNote,
		ExtraCost:            req.ExtraCost,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

func requireActor(c *fiber.Ctx) (*domain.User, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return principal.User, nil
}

func parseTicketQuery(c *fiber.Ctx) service.TicketListFilter {
	filter := service.TicketListFilter{}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.TicketStatus(strings.TrimSpace(part)))
		}
	}
	if priorityStr := c.Query("priority"); priorityStr != "" {
		for _, part := range strings.Split(priorityStr, ",") {
			filter.Priorities = append(filter.Priorities, domain.TicketPriority(strings.TrimSpace(part)))
		}
	}
	if categoryStr := c.Query("category"); categoryStr != "" {
		for _, part := range strings.Split(categoryStr, ",") {
			filter.Categories = append(filter.Categories, domain.TicketCategory(strings.TrimSpace(part)))
		}
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		filter.SearchTerm = &search
	}
	filter.Mine = c.QueryBool("mine")
	filter.Assigned = c.QueryBool("assigned")
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func ticketSummary(ticket *domain.Ticket) dto.TicketSummary {
	return dto.TicketSummary{
		ID:         ticket.ID,
		Title:      ticket.Title,
		Category:   ticket.Category,
		Priority:   ticket.Priority,
		Department: ticket.Department,
		Status:     ticket.Status,
		AssigneeID: ticket.AssigneeID,
		Deadline:   ticket.Deadline,
		CreatedAt:  ticket.CreatedAt,
		UpdatedAt:  ticket.UpdatedAt,
	}
}

func ticketDetail(ticket *domain.Ticket) dto.TicketDetailResponse {
	comments := make([]dto.CommentResponse, 0, len(ticket.Comments))
	for i := range ticket.Comments {
		comments = append(comments, commentResponse(&ticket.Comments[i]))
	}
	return dto.TicketDetailResponse{
		ID:                   ticket.ID,
		Title:                ticket.Title,
		Description:          ticket.Description,
		Category:             ticket.Category,
		Priority:             ticket.Priority,
		Department:           ticket.Department,
		Floor:                ticket.Floor,
		Room:                 ticket.Room,
		Bed:                  ticket.Bed,
		CreatedBy:            ticket.CreatedBy,
		UnitID:               ticket.UnitID,
		AssigneeID:           ticket.AssigneeID,
		Deadline:             ticket.Deadline,
		RequiredEquipmentIDs: ticket.RequiredEquipmentIDs,
		EquipmentNote:        ticket.EquipmentNote,
		ExtraCost:            ticket.ExtraCost,
		Status:               ticket.Status,
		CreatedAt:            ticket.CreatedAt,
		UpdatedAt:            ticket.UpdatedAt,
		ResolvedAt:           ticket.ResolvedAt,
		Comments:             comments,
		Attachments:          ticket.Attachments,
	}
}

func commentResponse(comment *domain.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        comment.ID,
		AuthorID:  comment.AuthorID,
		Body:      comment.Body,
		Internal:  comment.Internal,
		CreatedAt: comment.CreatedAt,
	}
}
