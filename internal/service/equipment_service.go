package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/careops/hospitalops/internal/domain"
	"github.com/careops/hospitalops/internal/repository"
	apperrors "github.com/careops/hospitalops/pkg/util/errorutil"
)

// EquipmentService manages the unit's device inventory.
type EquipmentService struct {
	equipment repository.EquipmentRepository
}

// NewEquipmentService constructs the service.
func NewEquipmentService(equipment repository.EquipmentRepository) *EquipmentService {
	return &EquipmentService{equipment: equipment}
}

// EquipmentInput carries create/update fields.
type EquipmentInput struct {
	Name            string
	Category        string
	SerialNumber    string
	Manufacturer    string
	Model           string
	PurchaseDate    *time.Time
	WarrantyExpiry  *time.Time
	Location        string
	Status          domain.EquipmentStatus
	LastMaintenance *time.Time
	NextMaintenance *time.Time
	Cost            float64
}

// Create validates and stores an equipment record for the caller's unit.
func (s *EquipmentService) Create(ctx context.Context, actor *domain.User, input EquipmentInput) (*domain.Equipment, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if err := validateEquipmentInput(&input); err != nil {
		return nil, err
	}

	equipment := &domain.Equipment{
		UnitID:          actor.UnitID,
		Name:            strings.TrimSpace(input.Name),
		Category:        input.Category,
		SerialNumber:    strings.TrimSpace(input.SerialNumber),
		Manufacturer:    input.Manufacturer,
		Model:           input.Model,
		PurchaseDate:    input.PurchaseDate,
		WarrantyExpiry:  input.WarrantyExpiry,
		Location:        input.Location,
		Status:          input.Status,
		LastMaintenance: input.LastMaintenance,
		NextMaintenance: input.NextMaintenance,
		Cost:            input.Cost,
	}
	if err := s.equipment.Create(ctx, equipment); err != nil {
		return nil, apperrors.MapError(err)
	}
	return equipment, nil
}

// Update overwrites an equipment record within the caller's unit.
func (s *EquipmentService) Update(ctx context.Context, actor *domain.User, id string, input EquipmentInput) (*domain.Equipment, error) {
	equipment, err := s.loadScoped(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := validateEquipmentInput(&input); err != nil {
		return nil, err
	}

	equipment.Name = strings.TrimSpace(input.Name)
	equipment.Category = input.Category
	equipment.SerialNumber = strings.TrimSpace(input.SerialNumber)
	equipment.Manufacturer = input.Manufacturer
	equipment.Model = input.Model
	equipment.PurchaseDate = input.PurchaseDate
	equipment.WarrantyExpiry = input.WarrantyExpiry
	equipment.Location = input.Location
	equipment.Status = input.Status
	equipment.LastMaintenance = input.LastMaintenance
	equipment.NextMaintenance = input.NextMaintenance
	equipment.Cost = input.Cost

	if err := s.equipment.Update(ctx, equipment); err != nil {
		return nil, apperrors.MapError(err)
	}
	return equipment, nil
}

// Delete removes an equipment record within the caller's unit.
func (s *EquipmentService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if _, err := s.loadScoped(ctx, actor, id); err != nil {
		return err
	}
	if err := s.equipment.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// Get fetches one equipment record within the caller's unit.
func (s *EquipmentService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Equipment, error) {
	return s.loadScoped(ctx, actor, id)
}

// List returns the unit's inventory with optional filters.
func (s *EquipmentService) List(ctx context.Context, actor *domain.User, filter repository.EquipmentFilter) ([]domain.Equipment, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	filter.UnitID = actor.UnitID
	result, err := s.equipment.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

func (s *EquipmentService) loadScoped(ctx context.Context, actor *domain.User, id string) (*domain.Equipment, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	equipment, err := s.equipment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("equipment", map[string]any{"equipment_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	if equipment.UnitID != actor.UnitID {
		return nil, apperrors.NewForbidden("equipment belongs to another unit")
	}
	return equipment, nil
}

func validateEquipmentInput(input *EquipmentInput) error {
	details := map[string]any{}
	if strings.TrimSpace(input.Name) == "" {
		details["name"] = "required"
	}
	if strings.TrimSpace(input.SerialNumber) == "" {
		details["serial_number"] = "required"
	}
	if input.Status == "" {
		input.Status = domain.EquipmentStatusActive
	}
	if !input.Status.IsValid() {
		details["status"] = "unknown status"
	}
	if input.Cost < 0 {
		details["cost"] = "must not be negative"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid equipment", details)
	}
	return nil
}
