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

// PurchasesHandler exposes acquisition and bill endpoints.
type PurchasesHandler struct {
	purchases *service.PurchaseService
}

// NewPurchasesHandler constructs handler.
func NewPurchasesHandler(purchaseService *service.PurchaseService) *PurchasesHandler {
	return &PurchasesHandler{purchases: purchaseService}
}

// Create POST /purchases.
func (h *PurchasesHandler) Create(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	var req dto.CreatePurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	purchase, err := h.purchases.Create(c.UserContext(), actor, service.PurchaseInput{
		EquipmentID:   req.EquipmentID,
		Quantity:      req.Quantity,
		UnitPrice:     req.UnitPrice,
		PurchaseDate:  req.PurchaseDate,
		VendorName:    req.VendorName,
		VendorContact: req.VendorContact,
		BillNumber:    req.BillNumber,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: req.PaymentStatus,
		Notes:         req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": purchaseResponse(purchase)})
}

// List GET /purchases.
func (h *PurchasesHandler) List(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	filter := repository.PurchaseFilter{
		Limit:  parseInt(c.Query("page_size"), 50),
		Offset: (parseInt(c.Query("page"), 1) - 1) * parseInt(c.Query("page_size"), 50),
	}
	if equipmentID := strings.TrimSpace(c.Query("equipment_id")); equipmentID != "" {
		filter.EquipmentID = &equipmentID
	}
	if status := strings.TrimSpace(c.Query("payment_status")); status != "" {
		paymentStatus := domain.PaymentStatus(status)
		filter.PaymentStatus = &paymentStatus
	}
	purchases, err := h.purchases.List(c.UserContext(), actor, filter)
	if err != nil {
		return err
	}
	items := make([]dto.PurchaseResponse, 0, len(purchases))
	for i := range purchases {
		items = append(items, purchaseResponse(&purchases[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Bill GET /purchases/bills/:billNumber.
func (h *PurchasesHandler) Bill(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	summary, err := h.purchases.BillSummary(c.UserContext(), actor, c.Params("billNumber"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": billSummaryResponse(summary)})
}

func purchaseResponse(purchase *domain.Purchase) dto.PurchaseResponse {
	return dto.PurchaseResponse{
		ID:            purchase.ID,
		EquipmentID:   purchase.EquipmentID,
		EquipmentName: purchase.EquipmentName,
		Quantity:      purchase.Quantity,
		UnitPrice:     purchase.UnitPrice,
		TotalAmount:   purchase.TotalAmount,
		PurchaseDate:  purchase.PurchaseDate,
		VendorName:    purchase.VendorName,
		VendorContact: purchase.VendorContact,
		BillNumber:    purchase.BillNumber,
		PaymentMethod: purchase.PaymentMethod,
		PaymentStatus: purchase.PaymentStatus,
		Notes:         purchase.Notes,
		CreatedAt:     purchase.CreatedAt,
	}
}

func billSummaryResponse(summary *domain.BillSummary) dto.BillSummaryResponse {
	items := make([]dto.BillItemResponse, 0, len(summary.Items))
	for _, item := range summary.Items {
		items = append(items, dto.BillItemResponse{
			EquipmentName: item.EquipmentName,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			TotalAmount:   item.TotalAmount,
		})
	}
	return dto.BillSummaryResponse{
		BillNumber:    summary.BillNumber,
		PurchaseDate:  summary.PurchaseDate,
		VendorName:    summary.VendorName,
		VendorContact: summary.VendorContact,
		Items:         items,
		Subtotal:      summary.Subtotal,
		Tax:           summary.Tax,
		TotalAmount:   summary.TotalAmount,
		PaymentMethod: summary.PaymentMethod,
		PaymentStatus: summary.PaymentStatus,
		Notes:         summary.Notes,
	}
}
