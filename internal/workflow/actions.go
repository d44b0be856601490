package workflow

import "github.com/careops/hospitalops/internal/domain"

// Action is a user-facing affordance on a ticket. UI and API layers consult
// AvailableActions instead of duplicating the transition table.
type Action string

const (
	ActionAccept       Action = "Accept"
	ActionReject       Action = "Reject"
	ActionStartWork    Action = "StartWork"
	ActionFlagBlocked  Action = "FlagBlocked"
	ActionResume       Action = "Resume"
	ActionMarkResolved Action = "MarkResolved"
	ActionVerifyClose  Action = "VerifyClose"
	ActionReopen       Action = "Reopen"
	ActionAddComment   Action = "AddComment"
	ActionViewOnly     Action = "ViewOnly"
)

// actionEdges maps every transition-backed action to its lifecycle edge.
// StartWork and Resume share the Pending resume edge: StartWork is the
// assignee picking work back up, Resume is the manager/admin unblocking.
var actionEdges = map[Action]Edge{
	ActionAccept:       {domain.TicketStatusOpen, domain.TicketStatusInProgress},
	ActionReject:       {domain.TicketStatusOpen, domain.TicketStatusRejected},
	ActionMarkResolved: {domain.TicketStatusInProgress, domain.TicketStatusResolved},
	ActionFlagBlocked:  {domain.TicketStatusInProgress, domain.TicketStatusPending},
	ActionStartWork:    {domain.TicketStatusPending, domain.TicketStatusInProgress},
	ActionResume:       {domain.TicketStatusPending, domain.TicketStatusInProgress},
	ActionVerifyClose:  {domain.TicketStatusResolved, domain.TicketStatusClosed},
	ActionReopen:       {domain.TicketStatusResolved, domain.TicketStatusInProgress},
}

// EdgeForAction returns the lifecycle edge an action drives, if any.
func EdgeForAction(action Action) (Edge, bool) {
	edge, ok := actionEdges[action]
	return edge, ok
}

// AvailableActions is a pure projection of the transition table: given the
// caller's role, the ticket status, and whether the caller is the assignee,
// it returns exactly the actions the lifecycle permits. Any authenticated
// participant may comment while the ticket is non-terminal; terminal tickets
// are view-only.
func AvailableActions(role domain.Role, status domain.TicketStatus, isAssignee bool) []Action {
	if status.IsTerminal() {
		return []Action{ActionViewOnly}
	}

	actions := []Action{}
	for _, action := range orderedActions {
		edge, ok := actionEdges[action]
		if !ok || edge.From != status {
			continue
		}
		if !CanTransition(edge.From, edge.To, role, isAssignee) {
			continue
		}
		if !actionMatchesActor(action, role, isAssignee) {
			continue
		}
		actions = append(actions, action)
	}
	return append(actions, ActionAddComment)
}

// orderedActions fixes a stable presentation order.
var orderedActions = []Action{
	ActionAccept,
	ActionReject,
	ActionStartWork,
	ActionResume,
	ActionFlagBlocked,
	ActionMarkResolved,
	ActionVerifyClose,
	ActionReopen,
}

// actionMatchesActor disambiguates the two names for the Pending resume
// edge so each caller sees exactly one of them.
func actionMatchesActor(action Action, role domain.Role, isAssignee bool) bool {
	switch action {
	case ActionStartWork:
		return isAssignee
	case ActionResume:
		return !isAssignee && role.AtLeastManager()
	}
	return true
}

// Has reports whether the action set contains the given action.
func Has(actions []Action, action Action) bool {
	for _, candidate := range actions {
		if candidate == action {
			return true
		}
	}
	return false
}
