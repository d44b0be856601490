package workflow

import (
	"testing"
	"time"

	"github.com/careops/hospitalops/internal/domain"
	apperrors "github.com/careops/hospitalops/pkg/util/errorutil"
)

func newTicket(status domain.TicketStatus, assigneeID string) domain.Ticket {
	ticket := domain.Ticket{
		ID:     "t-1",
		Title:  "CT scanner calibration drift",
		Status: status,
	}
	if assigneeID != "" {
		ticket.AssigneeID = &assigneeID
	}
	return ticket
}

func TestCanTransitionTriageEdges(t *testing.T) {
	cases := []struct {
		name       string
		from, to   domain.TicketStatus
		role       domain.Role
		isAssignee bool
		want       bool
	}{
		{"manager accepts open", domain.TicketStatusOpen, domain.TicketStatusInProgress, domain.RoleManager, false, true},
		{"admin rejects open", domain.TicketStatusOpen, domain.TicketStatusRejected, domain.RoleAdmin, false, true},
		{"employee may not accept", domain.TicketStatusOpen, domain.TicketStatusInProgress, domain.RoleEmployee, false, false},
		{"assignee resolves", domain.TicketStatusInProgress, domain.TicketStatusResolved, domain.RoleEmployee, true, true},
		{"non-assignee manager may not resolve", domain.TicketStatusInProgress, domain.TicketStatusResolved, domain.RoleManager, false, false},
		{"assignee flags blocked", domain.TicketStatusInProgress, domain.TicketStatusPending, domain.RoleEmployee, true, true},
		{"assignee resumes pending", domain.TicketStatusPending, domain.TicketStatusInProgress, domain.RoleEmployee, true, true},
		{"manager resumes pending", domain.TicketStatusPending, domain.TicketStatusInProgress, domain.RoleManager, false, true},
		{"other employee may not resume", domain.TicketStatusPending, domain.TicketStatusInProgress, domain.RoleEmployee, false, false},
		{"manager closes resolved", domain.TicketStatusResolved, domain.TicketStatusClosed, domain.RoleManager, false, true},
		{"manager reopens resolved", domain.TicketStatusResolved, domain.TicketStatusInProgress, domain.RoleAdmin, false, true},
		{"assignee may not close own resolved", domain.TicketStatusResolved, domain.TicketStatusClosed, domain.RoleEmployee, true, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CanTransition(tc.from, tc.to, tc.role, tc.isAssignee)
			if got != tc.want {
				t.Errorf("CanTransition(%q, %q, %q, %v) = %v, want %v",
					tc.from, tc.to, tc.role, tc.isAssignee, got, tc.want)
			}
		})
	}
}

func TestTransitionMissingEdge(t *testing.T) {
	ticket := newTicket(domain.TicketStatusOpen, "")
	_, err := Transition(ticket, domain.TicketStatusClosed, Actor{ID: "u-1", Role: domain.RoleAdmin}, time.Now())
	if !apperrors.IsCode(err, "INVALID_TRANSITION") {
		t.Fatalf("Transition(Open -> Closed) error = %v, want INVALID_TRANSITION", err)
	}
}

func TestTransitionWrongActorOnExistingEdge(t *testing.T) {
	ticket := newTicket(domain.TicketStatusOpen, "")
	_, err := Transition(ticket, domain.TicketStatusInProgress, Actor{ID: "u-1", Role: domain.RoleEmployee}, time.Now())
	if !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("Transition(Open -> In Progress) by employee error = %v, want FORBIDDEN", err)
	}
}

func TestTransitionUnknownTargetStatus(t *testing.T) {
	ticket := newTicket(domain.TicketStatusOpen, "")
	_, err := Transition(ticket, domain.TicketStatus("Archived"), Actor{ID: "u-1", Role: domain.RoleAdmin}, time.Now())
	if !apperrors.IsCode(err, "INVALID_TRANSITION") {
		t.Fatalf("Transition to unknown status error = %v, want INVALID_TRANSITION", err)
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	for _, from := range []domain.TicketStatus{domain.TicketStatusClosed, domain.TicketStatusRejected} {
		for _, to := range domain.AllTicketStatuses {
			if EdgeExists(from, to) {
				t.Errorf("EdgeExists(%q, %q) = true, want no exits from terminal status", from, to)
			}
		}
	}
}

func TestTransitionHappyPathStampsResolvedAt(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	manager := Actor{ID: "mgr-1", Role: domain.RoleManager}
	worker := Actor{ID: "emp-1", Role: domain.RoleEmployee}

	ticket := newTicket(domain.TicketStatusOpen, "")
	ticket, err := Transition(ticket, domain.TicketStatusInProgress, manager, now)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	assignee := worker.ID
	ticket.AssigneeID = &assignee

	ticket, err = Transition(ticket, domain.TicketStatusResolved, worker, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if ticket.ResolvedAt == nil || !ticket.ResolvedAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("ResolvedAt = %v, want %v", ticket.ResolvedAt, now.Add(time.Hour))
	}

	firstResolved := *ticket.ResolvedAt

	ticket, err = Transition(ticket, domain.TicketStatusInProgress, manager, now.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if ticket.ResolvedAt == nil || !ticket.ResolvedAt.Equal(firstResolved) {
		t.Fatalf("ResolvedAt after reopen = %v, want preserved %v", ticket.ResolvedAt, firstResolved)
	}

	ticket, err = Transition(ticket, domain.TicketStatusResolved, worker, now.Add(3*time.Hour))
	if err != nil {
		t.Fatalf("re-resolve: %v", err)
	}
	if !ticket.ResolvedAt.Equal(firstResolved) {
		t.Fatalf("ResolvedAt after second resolve = %v, want first stamp %v", ticket.ResolvedAt, firstResolved)
	}

	ticket, err = Transition(ticket, domain.TicketStatusClosed, manager, now.Add(4*time.Hour))
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if ticket.Status != domain.TicketStatusClosed {
		t.Fatalf("Status = %q, want %q", ticket.Status, domain.TicketStatusClosed)
	}
}

func TestTransitionDoesNotMutateInput(t *testing.T) {
	ticket := newTicket(domain.TicketStatusOpen, "")
	next, err := Transition(ticket, domain.TicketStatusRejected, Actor{ID: "mgr-1", Role: domain.RoleManager}, time.Now())
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if ticket.Status != domain.TicketStatusOpen {
		t.Errorf("input ticket status = %q, want unchanged %q", ticket.Status, domain.TicketStatusOpen)
	}
	if next.Status != domain.TicketStatusRejected {
		t.Errorf("next status = %q, want %q", next.Status, domain.TicketStatusRejected)
	}
}

func TestAllowedTargets(t *testing.T) {
	targets := AllowedTargets(domain.TicketStatusResolved, domain.RoleManager, false)
	want := map[domain.TicketStatus]bool{
		domain.TicketStatusInProgress: true,
		domain.TicketStatusClosed:     true,
	}
	if len(targets) != len(want) {
		t.Fatalf("AllowedTargets(Resolved, manager) = %v, want %d targets", targets, len(want))
	}
	for _, target := range targets {
		if !want[target] {
			t.Errorf("unexpected target %q", target)
		}
	}

	if got := AllowedTargets(domain.TicketStatusClosed, domain.RoleAdmin, false); len(got) != 0 {
		t.Errorf("AllowedTargets(Closed, admin) = %v, want none", got)
	}
}
