package workflow

import (
	"testing"

	"github.com/careops/hospitalops/internal/domain"
)

func TestAvailableActionsPerStatus(t *testing.T) {
	cases := []struct {
		name       string
		role       domain.Role
		status     domain.TicketStatus
		isAssignee bool
		want       []Action
	}{
		{"manager on open", domain.RoleManager, domain.TicketStatusOpen, false,
			[]Action{ActionAccept, ActionReject, ActionAddComment}},
		{"admin on open", domain.RoleAdmin, domain.TicketStatusOpen, false,
			[]Action{ActionAccept, ActionReject, ActionAddComment}},
		{"employee on open", domain.RoleEmployee, domain.TicketStatusOpen, false,
			[]Action{ActionAddComment}},
		{"assignee in progress", domain.RoleEmployee, domain.TicketStatusInProgress, true,
			[]Action{ActionFlagBlocked, ActionMarkResolved, ActionAddComment}},
		{"manager in progress not assignee", domain.RoleManager, domain.TicketStatusInProgress, false,
			[]Action{ActionAddComment}},
		{"assignee on pending", domain.RoleEmployee, domain.TicketStatusPending, true,
			[]Action{ActionStartWork, ActionAddComment}},
		{"manager on pending", domain.RoleManager, domain.TicketStatusPending, false,
			[]Action{ActionResume, ActionAddComment}},
		{"other employee on pending", domain.RoleEmployee, domain.TicketStatusPending, false,
			[]Action{ActionAddComment}},
		{"manager on resolved", domain.RoleManager, domain.TicketStatusResolved, false,
			[]Action{ActionVerifyClose, ActionReopen, ActionAddComment}},
		{"assignee on resolved", domain.RoleEmployee, domain.TicketStatusResolved, true,
			[]Action{ActionAddComment}},
		{"manager on closed", domain.RoleManager, domain.TicketStatusClosed, false,
			[]Action{ActionViewOnly}},
		{"admin on rejected", domain.RoleAdmin, domain.TicketStatusRejected, false,
			[]Action{ActionViewOnly}},
		{"assignee on closed", domain.RoleEmployee, domain.TicketStatusClosed, true,
			[]Action{ActionViewOnly}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AvailableActions(tc.role, tc.status, tc.isAssignee)
			if len(got) != len(tc.want) {
				t.Fatalf("AvailableActions(%q, %q, %v) = %v, want %v",
					tc.role, tc.status, tc.isAssignee, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("action[%d] = %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

// Every transition-backed action the gate offers must be drivable through the
// lifecycle table by the same actor, across the full role/status/assignee
// cross product.
func TestGateAgreesWithTransitionTable(t *testing.T) {
	roles := []domain.Role{domain.RoleAdmin, domain.RoleManager, domain.RoleEmployee}
	for _, role := range roles {
		for _, status := range domain.AllTicketStatuses {
			for _, isAssignee := range []bool{false, true} {
				actions := AvailableActions(role, status, isAssignee)
				for _, action := range actions {
					edge, ok := EdgeForAction(action)
					if !ok {
						continue // AddComment, ViewOnly
					}
					if edge.From != status {
						t.Errorf("role=%q status=%q assignee=%v: action %q starts at %q",
							role, status, isAssignee, action, edge.From)
					}
					if !CanTransition(edge.From, edge.To, role, isAssignee) {
						t.Errorf("role=%q status=%q assignee=%v: gate offers %q but table refuses edge %q -> %q",
							role, status, isAssignee, action, edge.From, edge.To)
					}
				}
			}
		}
	}
}

// The reverse direction: every edge the lifecycle table lets an actor drive
// must surface as at least one offered action, across the full cross product.
func TestGateOffersEveryPermittedEdge(t *testing.T) {
	roles := []domain.Role{domain.RoleAdmin, domain.RoleManager, domain.RoleEmployee}
	for edge := range transitions {
		for _, role := range roles {
			for _, isAssignee := range []bool{false, true} {
				if !CanTransition(edge.From, edge.To, role, isAssignee) {
					continue
				}
				offered := AvailableActions(role, edge.From, isAssignee)
				found := false
				for _, action := range offered {
					if got, ok := EdgeForAction(action); ok && got == edge {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("role=%q assignee=%v: table permits %q -> %q but gate offers none of %v",
						role, isAssignee, edge.From, edge.To, offered)
				}
			}
		}
	}
}

func TestTerminalStatusesAreViewOnly(t *testing.T) {
	for _, status := range []domain.TicketStatus{domain.TicketStatusClosed, domain.TicketStatusRejected} {
		actions := AvailableActions(domain.RoleAdmin, status, true)
		if len(actions) != 1 || actions[0] != ActionViewOnly {
			t.Errorf("AvailableActions(admin, %q, assignee) = %v, want [ViewOnly]", status, actions)
		}
		if Has(actions, ActionAddComment) {
			t.Errorf("terminal status %q offers AddComment", status)
		}
	}
}

func TestEdgeForAction(t *testing.T) {
	edge, ok := EdgeForAction(ActionVerifyClose)
	if !ok {
		t.Fatal("EdgeForAction(VerifyClose) not found")
	}
	if edge.From != domain.TicketStatusResolved || edge.To != domain.TicketStatusClosed {
		t.Errorf("VerifyClose edge = %q -> %q, want Resolved -> Closed", edge.From, edge.To)
	}

	if _, ok := EdgeForAction(ActionAddComment); ok {
		t.Error("EdgeForAction(AddComment) = edge, want none")
	}
	if _, ok := EdgeForAction(ActionViewOnly); ok {
		t.Error("EdgeForAction(ViewOnly) = edge, want none")
	}
}
