package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/careops/hospitalops/internal/domain"
	"github.com/careops/hospitalops/internal/events"
	"github.com/careops/hospitalops/internal/repository"
)

// In-memory repository fakes shared by the service tests.

type fakeTicketRepo struct {
	mu      sync.Mutex
	seq     int
	tickets map[string]domain.Ticket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[string]domain.Ticket{}}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	ticket.ID = fmt.Sprintf("t-%d", r.seq)
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := ticket
	return &copied, nil
}

func (r *fakeTicketRepo) ListByUnit(ctx context.Context, unitID string, limit, offset int) ([]domain.Ticket, error) {
	return r.ListWithFilter(ctx, repository.TicketFilter{UnitID: unitID, Limit: limit, Offset: offset})
}

func (r *fakeTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Ticket
	for i := 1; i <= r.seq; i++ {
		ticket, ok := r.tickets[fmt.Sprintf("t-%d", i)]
		if !ok || ticket.UnitID != filter.UnitID {
			continue
		}
		if filter.CreatedBy != nil && ticket.CreatedBy != *filter.CreatedBy {
			continue
		}
		if filter.AssigneeID != nil && !ticket.IsAssignedTo(*filter.AssigneeID) {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, ticket.Status) {
			continue
		}
		if filter.SearchTerm != nil {
			needle := strings.ToLower(*filter.SearchTerm)
			if !strings.Contains(strings.ToLower(ticket.Title), needle) &&
				!strings.Contains(strings.ToLower(ticket.Description), needle) {
				continue
			}
		}
		result = append(result, ticket)
	}
	return result, nil
}

func containsStatus(statuses []domain.TicketStatus, status domain.TicketStatus) bool {
	for _, candidate := range statuses {
		if candidate == status {
			return true
		}
	}
	return false
}

type fakeCommentRepo struct {
	mu        sync.Mutex
	seq       int
	comments  []domain.Comment
	createErr error
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.seq++
	comment.ID = fmt.Sprintf("c-%d", r.seq)
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *fakeCommentRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Comment
	for _, comment := range r.comments {
		if comment.TicketID == ticketID {
			result = append(result, comment)
		}
	}
	return result, nil
}

type fakeUserRepo struct {
	users map[string]domain.User
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = fmt.Sprintf("u-%d", len(r.users)+1)
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context, filter repository.UserFilter) ([]domain.User, error) {
	var result []domain.User
	for _, user := range r.users {
		if user.UnitID != filter.UnitID {
			continue
		}
		if filter.Role != nil && user.Role != *filter.Role {
			continue
		}
		if filter.Active != nil && user.Active != *filter.Active {
			continue
		}
		result = append(result, user)
	}
	return result, nil
}

type fakeUnitRepo struct {
	units map[string]domain.Unit
}

func (r *fakeUnitRepo) Create(_ context.Context, unit *domain.Unit) error {
	if unit.ID == "" {
		unit.ID = fmt.Sprintf("unit-%d", len(r.units)+1)
	}
	r.units[unit.ID] = *unit
	return nil
}

func (r *fakeUnitRepo) GetByID(_ context.Context, id string) (*domain.Unit, error) {
	unit, ok := r.units[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := unit
	return &copied, nil
}

func (r *fakeUnitRepo) List(_ context.Context) ([]domain.Unit, error) {
	var result []domain.Unit
	for _, unit := range r.units {
		result = append(result, unit)
	}
	return result, nil
}

type fakeEquipmentRepo struct {
	seq   int
	items map[string]domain.Equipment
}

func newFakeEquipmentRepo() *fakeEquipmentRepo {
	return &fakeEquipmentRepo{items: map[string]domain.Equipment{}}
}

func (r *fakeEquipmentRepo) Create(_ context.Context, equipment *domain.Equipment) error {
	r.seq++
	equipment.ID = fmt.Sprintf("eq-%d", r.seq)
	r.items[equipment.ID] = *equipment
	return nil
}

func (r *fakeEquipmentRepo) Update(_ context.Context, equipment *domain.Equipment) error {
	if _, ok := r.items[equipment.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.items[equipment.ID] = *equipment
	return nil
}

func (r *fakeEquipmentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func (r *fakeEquipmentRepo) GetByID(_ context.Context, id string) (*domain.Equipment, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := item
	return &copied, nil
}

func (r *fakeEquipmentRepo) List(_ context.Context, filter repository.EquipmentFilter) ([]domain.Equipment, error) {
	var result []domain.Equipment
	for i := 1; i <= r.seq; i++ {
		item, ok := r.items[fmt.Sprintf("eq-%d", i)]
		if !ok || item.UnitID != filter.UnitID {
			continue
		}
		result = append(result, item)
	}
	return result, nil
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) byType(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var result []events.Event
	for _, event := range d.events {
		if event.Type == eventType {
			result = append(result, event)
		}
	}
	return result
}
