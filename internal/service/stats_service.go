package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/careops/hospitalops/internal/domain"
	"github.com/careops/hospitalops/internal/events"
	"github.com/careops/hospitalops/internal/repository"
	"github.com/careops/hospitalops/internal/workflow"
	apperrors "github.com/careops/hospitalops/pkg/util/errorutil"
)

// UnitStats backs the dashboard stat cards.
type UnitStats struct {
	UnitID          string                      `json:"unit_id"`
	TicketsByStatus map[domain.TicketStatus]int `json:"tickets_by_status"`
	TotalTickets    int                         `json:"total_tickets"`
	TotalEquipment  int                         `json:"total_equipment"`
	EquipmentValue  float64                     `json:"equipment_value"`
	ComputedAt      time.Time                   `json:"computed_at"`
}

// StatsService computes per-unit dashboard counters behind a read-through
// Redis cache. Ticket mutations invalidate the unit's entry via the event
// dispatcher, so a stale card survives at most the TTL.
type StatsService struct {
	tickets   repository.TicketRepository
	equipment repository.EquipmentRepository
	cache     *redis.Client
	logger    *zap.Logger
	ttl       time.Duration
}

// NewStatsService constructs the service. A nil cache client degrades to
// computing on every call.
func NewStatsService(tickets repository.TicketRepository, equipment repository.EquipmentRepository, cache *redis.Client, logger *zap.Logger, ttl time.Duration) *StatsService {
	return &StatsService{
		tickets:   tickets,
		equipment: equipment,
		cache:     cache,
		logger:    logger,
		ttl:       ttl,
	}
}

// RegisterInvalidation subscribes cache invalidation to ticket events.
func (s *StatsService) RegisterInvalidation(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	invalidate := func(ctx context.Context, event events.Event) error {
		s.invalidate(ctx, event.UnitID)
		return nil
	}
	dispatcher.Subscribe(events.EventTicketCreated, invalidate)
	dispatcher.Subscribe(events.EventTicketStatusChanged, invalidate)
	dispatcher.Subscribe(events.EventTicketAssigned, invalidate)
}

// UnitStats returns the dashboard counters for the caller's unit.
func (s *StatsService) UnitStats(ctx context.Context, actor *domain.User) (*UnitStats, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}

	if cached := s.fromCache(ctx, actor.UnitID); cached != nil {
		return cached, nil
	}

	tickets, err := s.tickets.ListByUnit(ctx, actor.UnitID, 1000, 0)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	inventory, err := s.equipment.List(ctx, repository.EquipmentFilter{UnitID: actor.UnitID, Limit: 1000})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	stats := &UnitStats{
		UnitID:          actor.UnitID,
		TicketsByStatus: workflow.CountByStatus(tickets),
		TotalTickets:    len(tickets),
		TotalEquipment:  len(inventory),
		ComputedAt:      time.Now(),
	}
	for _, item := range inventory {
		stats.EquipmentValue += item.Cost
	}

	s.toCache(ctx, stats)
	return stats, nil
}

func (s *StatsService) fromCache(ctx context.Context, unitID string) *UnitStats {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, statsKey(unitID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("stats cache read failed", zap.Error(err))
		}
		return nil
	}
	var stats UnitStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		s.logger.Warn("stats cache decode failed", zap.Error(err))
		return nil
	}
	return &stats
}

func (s *StatsService) toCache(ctx context.Context, stats *UnitStats) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, statsKey(stats.UnitID), raw, s.ttl).Err(); err != nil {
		s.logger.Warn("stats cache write failed", zap.Error(err))
	}
}

func (s *StatsService) invalidate(ctx context.Context, unitID string) {
	if s.cache == nil || unitID == "" {
		return
	}
	if err := s.cache.Del(ctx, statsKey(unitID)).Err(); err != nil {
		s.logger.Warn("stats cache invalidation failed", zap.Error(err))
	}
}

func statsKey(unitID string) string {
	return fmt.Sprintf("stats:unit:%s", unitID)
}
