package workflow

import (
	"sort"
	"strings"

	"github.com/careops/hospitalops/internal/domain"
)

// FilterAll is the criteria value that applies no constraint.
const FilterAll = "all"

// Criteria narrows a ticket collection. Zero values and FilterAll do not
// constrain. SearchText matches title and description case-insensitively.
type Criteria struct {
	SearchText string
	Status     string
	Priority   string
	Category   string
}

// Filter returns the ordered subsequence of tickets matching every
// non-default criterion. The input order is preserved and the input slice is
// never modified.
func Filter(tickets []domain.Ticket, criteria Criteria) []domain.Ticket {
	matched := make([]domain.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if matches(ticket, criteria) {
			matched = append(matched, ticket)
		}
	}
	return matched
}

func matches(ticket domain.Ticket, criteria Criteria) bool {
	if constrains(criteria.Status) && string(ticket.Status) != criteria.Status {
		return false
	}
	if constrains(criteria.Priority) && string(ticket.Priority) != criteria.Priority {
		return false
	}
	if constrains(criteria.Category) && string(ticket.Category) != criteria.Category {
		return false
	}
	if search := strings.TrimSpace(criteria.SearchText); search != "" {
		needle := strings.ToLower(search)
		if !strings.Contains(strings.ToLower(ticket.Title), needle) &&
			!strings.Contains(strings.ToLower(ticket.Description), needle) {
			return false
		}
	}
	return true
}

func constrains(value string) bool {
	return value != "" && !strings.EqualFold(value, FilterAll)
}

// SortNewestFirst returns a copy ordered by creation time descending, for
// dashboard views. Ties keep their relative input order.
func SortNewestFirst(tickets []domain.Ticket) []domain.Ticket {
	sorted := append([]domain.Ticket(nil), tickets...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	return sorted
}

// CountByStatus tallies tickets per status, for dashboard stat cards.
func CountByStatus(tickets []domain.Ticket) map[domain.TicketStatus]int {
	counts := make(map[domain.TicketStatus]int, len(domain.AllTicketStatuses))
	for _, ticket := range tickets {
		counts[ticket.Status]++
	}
	return counts
}
