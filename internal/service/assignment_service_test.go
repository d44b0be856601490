package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/careops/hospitalops/internal/domain"
	"github.com/careops/hospitalops/internal/events"
	apperrors "github.com/careops/hospitalops/pkg/util/errorutil"
)

type assignmentHarness struct {
	assignments *AssignmentService
	tickets     *fakeTicketRepo
	comments    *fakeCommentRepo
	equipment   *fakeEquipmentRepo
	dispatcher  *recordingDispatcher
	clock       time.Time
	ticketID    string
}

func newAssignmentHarness(t *testing.T) *assignmentHarness {
	t.Helper()
	h := &assignmentHarness{
		tickets:    newFakeTicketRepo(),
		comments:   &fakeCommentRepo{},
		equipment:  newFakeEquipmentRepo(),
		dispatcher: &recordingDispatcher{},
		clock:      time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC),
	}
	users := &fakeUserRepo{users: map[string]domain.User{
		"emp-1": {ID: "emp-1", Role: domain.RoleEmployee, UnitID: "unit-1", Active: true},
		"emp-2": {ID: "emp-2", Role: domain.RoleEmployee, UnitID: "unit-1", Active: true},
		"emp-3": {ID: "emp-3", Role: domain.RoleEmployee, UnitID: "unit-2", Active: true},
		"emp-4": {ID: "emp-4", Role: domain.RoleEmployee, UnitID: "unit-1", Active: false},
		"mgr-1": {ID: "mgr-1", Role: domain.RoleManager, UnitID: "unit-1", Active: true},
	}}
	h.assignments = NewAssignmentService(AssignmentDependencies{
		TicketRepo:    h.tickets,
		UserRepo:      users,
		EquipmentRepo: h.equipment,
		CommentRepo:   h.comments,
		Dispatcher:    h.dispatcher,
		Now:           func() time.Time { return h.clock },
	})

	ticket, err := domain.NewTicket(domain.TicketInput{
		Title:       "Defibrillator battery swap",
		Description: "Battery below 40% capacity",
		Department:  "Emergency",
		CreatedBy:   "emp-1",
		UnitID:      "unit-1",
	}, nil, h.clock)
	if err != nil {
		t.Fatalf("NewTicket: %v", err)
	}
	if err := h.tickets.Create(context.Background(), ticket); err != nil {
		t.Fatalf("seed ticket: %v", err)
	}
	h.ticketID = ticket.ID
	return h
}

func (h *assignmentHarness) validInput() AssignmentInput {
	return AssignmentInput{
		AssigneeID: "emp-2",
		Deadline:   h.clock.Add(72 * time.Hour),
	}
}

func TestAssignHappyPath(t *testing.T) {
	h := newAssignmentHarness(t)
	input := h.validInput()
	input.RequiredEquipmentIDs = []string{}
	input.EquipmentNote = "use the cart charger"
	input.ExtraCost = 85

	ticket, err := h.assignments.Assign(context.Background(), testManager, h.ticketID, input)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if ticket.Status != domain.TicketStatusInProgress {
		t.Errorf("Status = %q, want In Progress", ticket.Status)
	}
	if !ticket.IsAssignedTo("emp-2") {
		t.Errorf("AssigneeID = %v, want emp-2", ticket.AssigneeID)
	}
	if ticket.Deadline == nil || !ticket.Deadline.Equal(input.Deadline) {
		t.Errorf("Deadline = %v, want %v", ticket.Deadline, input.Deadline)
	}
	if ticket.ExtraCost != 85 {
		t.Errorf("ExtraCost = %v, want 85", ticket.ExtraCost)
	}

	assigned := h.dispatcher.byType(events.EventTicketAssigned)
	if len(assigned) != 1 {
		t.Fatalf("published %d ticket_assigned events, want 1", len(assigned))
	}
	payload, ok := assigned[0].Payload.(events.TicketAssignedPayload)
	if !ok {
		t.Fatalf("payload type = %T", assigned[0].Payload)
	}
	if payload.AssigneeID != "emp-2" || payload.Reassigned {
		t.Errorf("payload = %+v, want fresh assignment to emp-2", payload)
	}
}

func TestAssignRequiresManagerTier(t *testing.T) {
	h := newAssignmentHarness(t)
	_, err := h.assignments.Assign(context.Background(), testEmployee, h.ticketID, h.validInput())
	if !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("Assign by employee error = %v, want FORBIDDEN", err)
	}
}

func TestAssignMissingDeadlineLeavesTicketUnchanged(t *testing.T) {
	h := newAssignmentHarness(t)
	input := h.validInput()
	input.Deadline = time.Time{}

	_, err := h.assignments.Assign(context.Background(), testManager, h.ticketID, input)
	if !apperrors.IsCode(err, "ASSIGNMENT_FAILED") {
		t.Fatalf("Assign without deadline error = %v, want ASSIGNMENT_FAILED", err)
	}

	stored, _ := h.tickets.GetByID(context.Background(), h.ticketID)
	if stored.AssigneeID != nil {
		t.Errorf("AssigneeID = %v, want nil after failed assignment", stored.AssigneeID)
	}
	if stored.Status != domain.TicketStatusOpen {
		t.Errorf("Status = %q, want Open after failed assignment", stored.Status)
	}
}

func TestAssignPastDeadline(t *testing.T) {
	h := newAssignmentHarness(t)
	input := h.validInput()
	input.Deadline = h.clock.Add(-48 * time.Hour)
	_, err := h.assignments.Assign(context.Background(), testManager, h.ticketID, input)
	if !apperrors.IsCode(err, "ASSIGNMENT_FAILED") {
		t.Fatalf("Assign with past deadline error = %v, want ASSIGNMENT_FAILED", err)
	}
}

func TestAssignRejectsBadAssignees(t *testing.T) {
	h := newAssignmentHarness(t)
	cases := []struct {
		name       string
		assigneeID string
	}{
		{"unknown user", "ghost"},
		{"wrong unit", "emp-3"},
		{"inactive", "emp-4"},
		{"manager not assignable", "mgr-1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := h.validInput()
			input.AssigneeID = tc.assigneeID
			_, err := h.assignments.Assign(context.Background(), testManager, h.ticketID, input)
			if !apperrors.IsCode(err, "ASSIGNMENT_FAILED") {
				t.Fatalf("Assign(%s) error = %v, want ASSIGNMENT_FAILED", tc.assigneeID, err)
			}
		})
	}
}

func TestAssignUnknownEquipment(t *testing.T) {
	h := newAssignmentHarness(t)
	input := h.validInput()
	input.RequiredEquipmentIDs = []string{"eq-404"}
	_, err := h.assignments.Assign(context.Background(), testManager, h.ticketID, input)
	if !apperrors.IsCode(err, "ASSIGNMENT_FAILED") {
		t.Fatalf("Assign with unknown equipment error = %v, want ASSIGNMENT_FAILED", err)
	}
}

func TestAssignEquipmentFromAnotherUnit(t *testing.T) {
	h := newAssignmentHarness(t)
	foreign := &domain.Equipment{UnitID: "unit-2", Name: "Portable X-ray", SerialNumber: "PX-1"}
	if err := h.equipment.Create(context.Background(), foreign); err != nil {
		t.Fatalf("seed equipment: %v", err)
	}
	input := h.validInput()
	input.RequiredEquipmentIDs = []string{foreign.ID}
	_, err := h.assignments.Assign(context.Background(), testManager, h.ticketID, input)
	if !apperrors.IsCode(err, "ASSIGNMENT_FAILED") {
		t.Fatalf("Assign with cross-unit equipment error = %v, want ASSIGNMENT_FAILED", err)
	}
}

func TestReassignInProgressRecordsTrail(t *testing.T) {
	h := newAssignmentHarness(t)
	if _, err := h.assignments.Assign(context.Background(), testManager, h.ticketID, h.validInput()); err != nil {
		t.Fatalf("first assign: %v", err)
	}

	input := h.validInput()
	input.AssigneeID = "emp-1"
	ticket, err := h.assignments.Assign(context.Background(), testManager, h.ticketID, input)
	if err != nil {
		t.Fatalf("reassign: %v", err)
	}
	if !ticket.IsAssignedTo("emp-1") {
		t.Errorf("AssigneeID = %v, want emp-1 after reassign", ticket.AssigneeID)
	}
	if ticket.Status != domain.TicketStatusInProgress {
		t.Errorf("Status = %q, want In Progress preserved", ticket.Status)
	}

	comments, _ := h.comments.ListByTicket(context.Background(), h.ticketID)
	if len(comments) != 1 || !strings.Contains(comments[0].Body, "emp-2") || !strings.Contains(comments[0].Body, "emp-1") {
		t.Errorf("comments = %v, want reassignment trail naming both assignees", comments)
	}

	assigned := h.dispatcher.byType(events.EventTicketAssigned)
	if len(assigned) != 2 {
		t.Fatalf("published %d ticket_assigned events, want 2", len(assigned))
	}
	payload := assigned[1].Payload.(events.TicketAssignedPayload)
	if !payload.Reassigned {
		t.Error("second event Reassigned = false, want true")
	}
}

func TestReassignSurvivesTrailNoteFailure(t *testing.T) {
	h := newAssignmentHarness(t)
	if _, err := h.assignments.Assign(context.Background(), testManager, h.ticketID, h.validInput()); err != nil {
		t.Fatalf("first assign: %v", err)
	}
	h.comments.createErr = errors.New("comment store down")

	input := h.validInput()
	input.AssigneeID = "emp-1"
	ticket, err := h.assignments.Assign(context.Background(), testManager, h.ticketID, input)
	if err != nil {
		t.Fatalf("reassign with failing comment store: %v", err)
	}
	if !ticket.IsAssignedTo("emp-1") {
		t.Errorf("AssigneeID = %v, want emp-1 despite lost trail note", ticket.AssigneeID)
	}

	assigned := h.dispatcher.byType(events.EventTicketAssigned)
	if len(assigned) != 2 {
		t.Fatalf("published %d ticket_assigned events, want 2", len(assigned))
	}
	payload := assigned[1].Payload.(events.TicketAssignedPayload)
	if !payload.Reassigned || payload.AssigneeID != "emp-1" {
		t.Errorf("second event payload = %+v, want reassignment to emp-1", payload)
	}
}

func TestReassignToSameEmployeeRefused(t *testing.T) {
	h := newAssignmentHarness(t)
	if _, err := h.assignments.Assign(context.Background(), testManager, h.ticketID, h.validInput()); err != nil {
		t.Fatalf("first assign: %v", err)
	}
	_, err := h.assignments.Assign(context.Background(), testManager, h.ticketID, h.validInput())
	if !apperrors.IsCode(err, "ASSIGNMENT_FAILED") {
		t.Fatalf("same-assignee reassign error = %v, want ASSIGNMENT_FAILED", err)
	}
}

func TestAssignTerminalTicketRefused(t *testing.T) {
	h := newAssignmentHarness(t)
	stored, _ := h.tickets.GetByID(context.Background(), h.ticketID)
	closed := stored.WithStatus(domain.TicketStatusRejected, h.clock)
	if err := h.tickets.Update(context.Background(), &closed); err != nil {
		t.Fatalf("seed rejected ticket: %v", err)
	}

	_, err := h.assignments.Assign(context.Background(), testManager, h.ticketID, h.validInput())
	if !apperrors.IsCode(err, "ASSIGNMENT_FAILED") {
		t.Fatalf("Assign on rejected ticket error = %v, want ASSIGNMENT_FAILED", err)
	}
}
