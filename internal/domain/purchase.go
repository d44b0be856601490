package domain

import "time"

// PaymentMethod enumerates how a purchase was paid.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "Cash"
	PaymentMethodCard         PaymentMethod = "Card"
	PaymentMethodBankTransfer PaymentMethod = "Bank Transfer"
	PaymentMethodCheque       PaymentMethod = "Cheque"
)

// PaymentStatus enumerates settlement states.
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusPartial PaymentStatus = "Partial"
)

// Purchase is a bill-backed acquisition of equipment for a unit.
type Purchase struct {
	ID            string
	UnitID        string
	EquipmentID   string
	EquipmentName string
	Quantity      int
	UnitPrice     float64
	TotalAmount   float64
	PurchaseDate  time.Time
	VendorName    string
	VendorContact string
	BillNumber    string
	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BillSummary is the computed line-item rollup for a purchase bill.
type BillSummary struct {
	BillNumber    string
	PurchaseDate  time.Time
	VendorName    string
	VendorContact string
	Items         []BillItem
	Subtotal      float64
	Tax           float64
	TotalAmount   float64
	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus
	Notes         string
}

// BillItem is one purchased line on a bill.
type BillItem struct {
	EquipmentName string
	Quantity      int
	UnitPrice     float64
	TotalAmount   float64
}
