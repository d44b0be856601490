package dto

import (
	"time"

	"github.com/careops/hospitalops/internal/domain"
)

// CreatePurchaseRequest payload.
type CreatePurchaseRequest struct {
	EquipmentID   string               `json:"equipment_id" validate:"required"`
	Quantity      int                  `json:"quantity" validate:"required,gt=0"`
	UnitPrice     float64              `json:"unit_price" validate:"gte=0"`
	PurchaseDate  time.Time            `json:"purchase_date" validate:"required"`
	VendorName    string               `json:"vendor_name" validate:"required"`
	VendorContact string               `json:"vendor_contact"`
	BillNumber    string               `json:"bill_number" validate:"required"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
	Notes         string               `json:"notes"`
}

// PurchaseResponse is one acquisition line.
type PurchaseResponse struct {
	ID            string               `json:"id"`
	EquipmentID   string               `json:"equipment_id"`
	EquipmentName string               `json:"equipment_name"`
	Quantity      int                  `json:"quantity"`
	UnitPrice     float64              `json:"unit_price"`
	TotalAmount   float64              `json:"total_amount"`
	PurchaseDate  time.Time            `json:"purchase_date"`
	VendorName    string               `json:"vendor_name"`
	VendorContact string               `json:"vendor_contact,omitempty"`
	BillNumber    string               `json:"bill_number"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
	Notes         string               `json:"notes,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

// BillSummaryResponse is the computed rollup for a bill number.
type BillSummaryResponse struct {
	BillNumber    string               `json:"bill_number"`
	PurchaseDate  time.Time            `json:"purchase_date"`
	VendorName    string               `json:"vendor_name"`
	VendorContact string               `json:"vendor_contact,omitempty"`
	Items         []BillItemResponse   `json:"items"`
	Subtotal      float64              `json:"subtotal"`
	Tax           float64              `json:"tax"`
	TotalAmount   float64              `json:"total_amount"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
	Notes         string               `json:"notes,omitempty"`
}

// BillItemResponse is one purchased line on a bill.
type BillItemResponse struct {
	EquipmentName string  `json:"equipment_name"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
	TotalAmount   float64 `json:"total_amount"`
}
