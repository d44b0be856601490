package service

import (
	"context"
	"strings"

	"github.com/careops/hospitalops/internal/domain"
	"github.com/careops/hospitalops/internal/repository"
	apperrors "github.com/careops/hospitalops/pkg/util/errorutil"
)

// UnitService manages the hospital units that scope every other resource.
// Listing backs the unit picker shown before login; creation is admin-only,
// enforced by the route guard.
type UnitService struct {
	units repository.UnitRepository
}

// NewUnitService constructs the service.
func NewUnitService(units repository.UnitRepository) *UnitService {
	return &UnitService{units: units}
}

// UnitInput describes a new hospital unit.
type UnitInput struct {
	Name        string
	Address     string
	Phone       string
	Email       string
	Departments []string
}

// Create registers a hospital unit. Department names are trimmed and blanks
// dropped; a unit with no departments falls back to the default set when
// tickets are validated.
func (s *UnitService) Create(ctx context.Context, input UnitInput) (*domain.Unit, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("invalid unit", map[string]any{"name": "required"})
	}

	var departments []string
	for _, department := range input.Departments {
		if trimmed := strings.TrimSpace(department); trimmed != "" {
			departments = append(departments, trimmed)
		}
	}

	unit := &domain.Unit{
		Name:        strings.TrimSpace(input.Name),
		Address:     strings.TrimSpace(input.Address),
		Phone:       strings.TrimSpace(input.Phone),
		Email:       strings.ToLower(strings.TrimSpace(input.Email)),
		Departments: departments,
	}
	if err := s.units.Create(ctx, unit); err != nil {
		return nil, apperrors.MapError(err)
	}
	return unit, nil
}

// List returns every unit, for the pre-login unit picker.
func (s *UnitService) List(ctx context.Context) ([]domain.Unit, error) {
	units, err := s.units.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return units, nil
}
