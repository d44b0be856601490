package workflow

import (
	"time"

	"github.com/careops/hospitalops/internal/domain"
	apperrors "github.com/careops/hospitalops/pkg/util/errorutil"
)

// Actor identifies who is driving a transition.
type Actor struct {
	ID   string
	Role domain.Role
}

// Edge is one directed transition in the ticket lifecycle.
type Edge struct {
	From domain.TicketStatus
	To   domain.TicketStatus
}

// rule says who may drive an edge: any of the listed roles, and/or the
// ticket's current assignee regardless of role.
type rule struct {
	roles       []domain.Role
	assigneeMay bool
}

// transitions is the single source of truth for the lifecycle. Triage edges
// sit at the admin/manager tier, execution edges at the assignee,
// verification edges back at manager/admin.
var transitions = map[Edge]rule{
	{domain.TicketStatusOpen, domain.TicketStatusInProgress}:     {roles: []domain.Role{domain.RoleAdmin, domain.RoleManager}},
	{domain.TicketStatusOpen, domain.TicketStatusRejected}:       {roles: []domain.Role{domain.RoleAdmin, domain.RoleManager}},
	{domain.TicketStatusInProgress, domain.TicketStatusResolved}: {assigneeMay: true},
	{domain.TicketStatusInProgress, domain.TicketStatusPending}:  {assigneeMay: true},
	{domain.TicketStatusPending, domain.TicketStatusInProgress}:  {roles: []domain.Role{domain.RoleAdmin, domain.RoleManager}, assigneeMay: true},
	{domain.TicketStatusResolved, domain.TicketStatusClosed}:     {roles: []domain.Role{domain.RoleAdmin, domain.RoleManager}},
	{domain.TicketStatusResolved, domain.TicketStatusInProgress}: {roles: []domain.Role{domain.RoleAdmin, domain.RoleManager}},
}

// EdgeExists reports whether the lifecycle defines the given edge at all,
// independent of who is asking.
func EdgeExists(from, to domain.TicketStatus) bool {
	_, ok := transitions[Edge{From: from, To: to}]
	return ok
}

// CanTransition reports whether an actor with the given role (and assignee
// relationship to the ticket) may drive the edge.
func CanTransition(from, to domain.TicketStatus, role domain.Role, isAssignee bool) bool {
	r, ok := transitions[Edge{From: from, To: to}]
	if !ok {
		return false
	}
	if r.assigneeMay && isAssignee {
		return true
	}
	for _, allowed := range r.roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// AllowedTargets returns every status the actor may move the ticket to from
// the given status.
func AllowedTargets(from domain.TicketStatus, role domain.Role, isAssignee bool) []domain.TicketStatus {
	var targets []domain.TicketStatus
	for _, to := range domain.AllTicketStatuses {
		if CanTransition(from, to, role, isAssignee) {
			targets = append(targets, to)
		}
	}
	return targets
}

// Transition applies one lifecycle edge to a ticket and returns the new
// snapshot. A missing edge fails with INVALID_TRANSITION naming the attempted
// edge; an existing edge driven by the wrong actor fails with FORBIDDEN. The
// input ticket is never mutated.
func Transition(ticket domain.Ticket, to domain.TicketStatus, actor Actor, now time.Time) (domain.Ticket, error) {
	if !to.IsValid() {
		return ticket, apperrors.NewInvalidTransition(string(ticket.Status), string(to), map[string]any{
			"reason": "unknown status",
		})
	}
	if !EdgeExists(ticket.Status, to) {
		return ticket, apperrors.NewInvalidTransition(string(ticket.Status), string(to), nil)
	}
	if !CanTransition(ticket.Status, to, actor.Role, ticket.IsAssignedTo(actor.ID)) {
		return ticket, apperrors.NewForbidden("role may not drive this transition")
	}
	return ticket.WithStatus(to, now), nil
}
