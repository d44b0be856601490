package domain

import "time"

// Comment is an append-only note on a ticket. Comments are never edited or
// deleted once created; reassignment audit entries are internal comments.
type Comment struct {
	ID        string
	TicketID  string
	AuthorID  string
	Body      string
	Internal  bool
	CreatedAt time.Time
}
