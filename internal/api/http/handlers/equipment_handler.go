package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/careops/hospitalops/internal/api/dto"
	"github.com/careops/hospitalops/internal/domain"
	"github.com/careops/hospitalops/internal/repository"
	"github.com/careops/hospitalops/internal/service"
	apperrors "github.com/careops/hospitalops/pkg/util/errorutil"
)

// EquipmentHandler exposes the inventory endpoints.
type EquipmentHandler struct {
	equipment *service.EquipmentService
}

// NewEquipmentHandler constructs handler.
func NewEquipmentHandler(equipmentService *service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{equipment: equipmentService}
}

// Create POST /equipment.
func (h *EquipmentHandler) Create(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	req, err := parseEquipmentRequest(c)
	if err != nil {
		return err
	}
	item, err := h.equipment.Create(c.UserContext(), actor, equipmentInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": equipmentResponse(item)})
}

// Update PUT /equipment/:id.
func (h *EquipmentHandler) Update(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	req, err := parseEquipmentRequest(c)
	if err != nil {
		return err
	}
	item, err := h.equipment.Update(c.UserContext(), actor, c.Params("id"), equipmentInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": equipmentResponse(item)})
}

// Delete DELETE /equipment/:id.
func (h *EquipmentHandler) Delete(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	if err := h.equipment.Delete(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Get GET /equipment/:id.
func (h *EquipmentHandler) Get(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	item, err := h.equipment.Get(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": equipmentResponse(item)})
}

// List GET /equipment.
func (h *EquipmentHandler) List(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	filter := repository.EquipmentFilter{
		Limit:  parseInt(c.Query("page_size"), 50),
		Offset: (parseInt(c.Query("page"), 1) - 1) * parseInt(c.Query("page_size"), 50),
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		equipmentStatus := domain.EquipmentStatus(status)
		filter.Status = &equipmentStatus
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		filter.SearchTerm = &search
	}
	items, err := h.equipment.List(c.UserContext(), actor, filter)
	if err != nil {
		return err
	}
	resp := make([]dto.EquipmentResponse, 0, len(items))
	for i := range items {
		resp = append(resp, equipmentResponse(&items[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

func parseEquipmentRequest(c *fiber.Ctx) (dto.EquipmentRequest, error) {
	var req dto.EquipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return req, apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return req, err
	}
	return req, nil
}

func equipmentInput(req dto.EquipmentRequest) service.EquipmentInput {
	return service.EquipmentInput{
		Name:            req.Name,
		Category:        req.Category,
		SerialNumber:    req.SerialNumber,
		Manufacturer:    req.Manufacturer,
		Model:           req.Model,
		PurchaseDate:    req.PurchaseDate,
		WarrantyExpiry:  req.WarrantyExpiry,
		Location:        req.Location,
		Status:          req.Status,
		LastMaintenance: req.LastMaintenance,
		NextMaintenance: req.NextMaintenance,
		Cost:            req.Cost,
	}
}

func equipmentResponse(item *domain.Equipment) dto.EquipmentResponse {
	return dto.EquipmentResponse{
		ID:              item.ID,
		Name:            item.Name,
		Category:        item.Category,
		SerialNumber:    item.SerialNumber,
		Manufacturer:    item.Manufacturer,
		Model:           item.Model,
		PurchaseDate:    item.PurchaseDate,
		WarrantyExpiry:  item.WarrantyExpiry,
		Location:        item.Location,
		Status:          item.Status,
		LastMaintenance: item.LastMaintenance,
		NextMaintenance: item.NextMaintenance,
		Cost:            item.Cost,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}
