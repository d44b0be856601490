package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/careops/hospitalops/internal/domain"
)

func TestUnitStatsComputesCounters(t *testing.T) {
	tickets := newFakeTicketRepo()
	equipment := newFakeEquipmentRepo()
	now := time.Now()

	for _, status := range []domain.TicketStatus{
		domain.TicketStatusOpen,
		domain.TicketStatusOpen,
		domain.TicketStatusInProgress,
		domain.TicketStatusClosed,
	} {
		ticket, err := domain.NewTicket(domain.TicketInput{
			Title:       "fixture",
			Description: "fixture",
			Department:  "IT",
			CreatedBy:   "u-1",
			UnitID:      "unit-1",
		}, nil, now)
		if err != nil {
			t.Fatalf("NewTicket: %v", err)
		}
		if err := tickets.Create(context.Background(), ticket); err != nil {
			t.Fatalf("seed ticket: %v", err)
		}
		updated := ticket.WithStatus(status, now)
		if err := tickets.Update(context.Background(), &updated); err != nil {
			t.Fatalf("seed status: %v", err)
		}
	}

	for _, cost := range []float64{1000, 2500} {
		item := &domain.Equipment{UnitID: "unit-1", Name: "monitor", SerialNumber: "sn", Cost: cost}
		if err := equipment.Create(context.Background(), item); err != nil {
			t.Fatalf("seed equipment: %v", err)
		}
	}

	// nil cache client: the service must compute directly.
	stats := NewStatsService(tickets, equipment, nil, zap.NewNop(), time.Minute)
	got, err := stats.UnitStats(context.Background(), testManager)
	if err != nil {
		t.Fatalf("UnitStats: %v", err)
	}

	if got.TotalTickets != 4 {
		t.Errorf("TotalTickets = %d, want 4", got.TotalTickets)
	}
	if got.TicketsByStatus[domain.TicketStatusOpen] != 2 {
		t.Errorf("Open count = %d, want 2", got.TicketsByStatus[domain.TicketStatusOpen])
	}
	if got.TicketsByStatus[domain.TicketStatusClosed] != 1 {
		t.Errorf("Closed count = %d, want 1", got.TicketsByStatus[domain.TicketStatusClosed])
	}
	if got.TotalEquipment != 2 {
		t.Errorf("TotalEquipment = %d, want 2", got.TotalEquipment)
	}
	if got.EquipmentValue != 3500 {
		t.Errorf("EquipmentValue = %v, want 3500", got.EquipmentValue)
	}
}

func TestUnitStatsScopedToCallerUnit(t *testing.T) {
	tickets := newFakeTicketRepo()
	equipment := newFakeEquipmentRepo()

	ticket, err := domain.NewTicket(domain.TicketInput{
		Title:       "fixture",
		Description: "fixture",
		Department:  "IT",
		CreatedBy:   "u-1",
		UnitID:      "unit-1",
	}, nil, time.Now())
	if err != nil {
		t.Fatalf("NewTicket: %v", err)
	}
	if err := tickets.Create(context.Background(), ticket); err != nil {
		t.Fatalf("seed ticket: %v", err)
	}

	stats := NewStatsService(tickets, equipment, nil, zap.NewNop(), time.Minute)
	got, err := stats.UnitStats(context.Background(), otherUnitMgr)
	if err != nil {
		t.Fatalf("UnitStats: %v", err)
	}
	if got.TotalTickets != 0 {
		t.Errorf("TotalTickets for unit-2 = %d, want 0", got.TotalTickets)
	}
}
