package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/careops/hospitalops/internal/api/dto"
	"github.com/careops/hospitalops/internal/domain"
	"github.com/careops/hospitalops/internal/service"
	apperrors "github.com/careops/hospitalops/pkg/util/errorutil"
)

// UnitsHandler exposes the hospital unit endpoints.
type UnitsHandler struct {
	units *service.UnitService
}

// NewUnitsHandler constructs handler.
func NewUnitsHandler(unitService *service.UnitService) *UnitsHandler {
	return &UnitsHandler{units: unitService}
}

// List GET /units. Public: the unit picker renders before login.
func (h *UnitsHandler) List(c *fiber.Ctx) error {
	units, err := h.units.List(c.UserContext())
	if err != nil {
		return err
	}
	resp := make([]dto.UnitResponse, 0, len(units))
	for i := range units {
		resp = append(resp, unitResponse(&units[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Create POST /api/units.
func (h *UnitsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUnitRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	unit, err := h.units.Create(c.UserContext(), service.UnitInput{
		Name:        req.Name,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		Departments: req.Departments,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": unitResponse(unit)})
}

func unitResponse(unit *domain.Unit) dto.UnitResponse {
	return dto.UnitResponse{
		ID:          unit.ID,
		Name:        unit.Name,
		Address:     unit.Address,
		Phone:       unit.Phone,
		Email:       unit.Email,
		Departments: unit.Departments,
		CreatedAt:   unit.CreatedAt,
		UpdatedAt:   unit.UpdatedAt,
	}
}
