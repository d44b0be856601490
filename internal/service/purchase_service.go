package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/careops/hospitalops/internal/config"
	"github.com/careops/hospitalops/internal/domain"
	"github.com/careops/hospitalops/internal/repository"
	apperrors "github.com/careops/hospitalops/pkg/util/errorutil"
)

// PurchaseService records equipment acquisitions and computes bill summaries.
type PurchaseService struct {
	purchases repository.PurchaseRepository
	equipment repository.EquipmentRepository
	billing   config.BillingConfig
}

// NewPurchaseService constructs the service.
func NewPurchaseService(purchases repository.PurchaseRepository, equipment repository.EquipmentRepository, billing config.BillingConfig) *PurchaseService {
	return &PurchaseService{purchases: purchases, equipment: equipment, billing: billing}
}

// PurchaseInput carries the creation fields.
type PurchaseInput struct {
	EquipmentID   string
	Quantity      int
	UnitPrice     float64
	PurchaseDate  time.Time
	VendorName    string
	VendorContact string
	BillNumber    string
	PaymentMethod domain.PaymentMethod
	PaymentStatus domain.PaymentStatus
	Notes         string
}

// Create validates and stores a purchase record. The equipment must belong
// to the caller's unit; the total is computed server-side.
func (s *PurchaseService) Create(ctx context.Context, actor *domain.User, input PurchaseInput) (*domain.Purchase, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}

	details := map[string]any{}
	if input.Quantity <= 0 {
		details["quantity"] = "must be positive"
	}
	if input.UnitPrice < 0 {
		details["unit_price"] = "must not be negative"
	}
	if strings.TrimSpace(input.VendorName) == "" {
		details["vendor_name"] = "required"
	}
	if strings.TrimSpace(input.BillNumber) == "" {
		details["bill_number"] = "required"
	}
	if input.PurchaseDate.IsZero() {
		details["purchase_date"] = "required"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid purchase", details)
	}

	equipment, err := s.equipment.GetByID(ctx, input.EquipmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("equipment", map[string]any{"equipment_id": input.EquipmentID})
		}
		return nil, apperrors.MapError(err)
	}
	if equipment.UnitID != actor.UnitID {
		return nil, apperrors.NewForbidden("equipment belongs to another unit")
	}

	paymentStatus := input.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = domain.PaymentStatusPending
	}

	purchase := &domain.Purchase{
		UnitID:        actor.UnitID,
		EquipmentID:   equipment.ID,
		EquipmentName: equipment.Name,
		Quantity:      input.Quantity,
		UnitPrice:     input.UnitPrice,
		TotalAmount:   float64(input.Quantity) * input.UnitPrice,
		PurchaseDate:  input.PurchaseDate,
		VendorName:    strings.TrimSpace(input.VendorName),
		VendorContact: input.VendorContact,
		BillNumber:    strings.TrimSpace(input.BillNumber),
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: paymentStatus,
		Notes:         input.Notes,
	}
	if err := s.purchases.Create(ctx, purchase); err != nil {
		return nil, apperrors.MapError(err)
	}
	return purchase, nil
}

// List returns the unit's purchases with optional filters.
func (s *PurchaseService) List(ctx context.Context, actor *domain.User, filter repository.PurchaseFilter) ([]domain.Purchase, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	filter.UnitID = actor.UnitID
	result, err := s.purchases.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// BillSummary rolls up every purchase line sharing a bill number into one
// bill with subtotal, tax and total.
func (s *PurchaseService) BillSummary(ctx context.Context, actor *domain.User, billNumber string) (*domain.BillSummary, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	lines, err := s.purchases.GetByBillNumber(ctx, actor.UnitID, billNumber)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(lines) == 0 {
		return nil, apperrors.NewNotFound("bill", map[string]any{"bill_number": billNumber})
	}
	return SummarizeBill(lines, s.billing.TaxRate), nil
}

// SummarizeBill computes the rollup for purchase lines that share a bill.
// Header fields come from the first line.
func SummarizeBill(lines []domain.Purchase, taxRate float64) *domain.BillSummary {
	head := lines[0]
	summary := &domain.BillSummary{
		BillNumber:    head.BillNumber,
		PurchaseDate:  head.PurchaseDate,
		VendorName:    head.VendorName,
		VendorContact: head.VendorContact,
		PaymentMethod: head.PaymentMethod,
		PaymentStatus: head.PaymentStatus,
		Notes:         head.Notes,
	}
	for _, line := range lines {
		summary.Items = append(summary.Items, domain.BillItem{
			EquipmentName: line.EquipmentName,
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
			TotalAmount:   line.TotalAmount,
		})
		summary.Subtotal += line.TotalAmount
	}
	summary.Tax = summary.Subtotal * taxRate
	summary.TotalAmount = summary.Subtotal + summary.Tax
	return summary
}
