package dto

import (
	"time"

	"github.com/careops/hospitalops/internal/domain"
)

// EquipmentRequest payload for create and update.
type EquipmentRequest struct {
	Name            string                 `json:"name" validate:"required"`
	Category        string                 `json:"category"`
	SerialNumber    string                 `json:"serial_number" validate:"required"`
	Manufacturer    string                 `json:"manufacturer"`
	Model           string                 `json:"model"`
	PurchaseDate    *time.Time             `json:"purchase_date"`
	WarrantyExpiry  *time.Time             `json:"warranty_expiry"`
	Location        string                 `json:"location"`
	Status          domain.EquipmentStatus `json:"status"`
	LastMaintenance *time.Time             `json:"last_maintenance"`
	NextMaintenance *time.Time             `json:"next_maintenance"`
	Cost            float64                `json:"cost" validate:"gte=0"`
}

// EquipmentResponse is the inventory record shape.
type EquipmentResponse struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	Category        string                 `json:"category,omitempty"`
	SerialNumber    string                 `json:"serial_number"`
	Manufacturer    string                 `json:"manufacturer,omitempty"`
	Model           string                 `json:"model,omitempty"`
	PurchaseDate    *time.Time             `json:"purchase_date"`
	WarrantyExpiry  *time.Time             `json:"warranty_expiry"`
	Location        string                 `json:"location,omitempty"`
	Status          domain.EquipmentStatus `json:"status"`
	LastMaintenance *time.Time             `json:"last_maintenance"`
	NextMaintenance *time.Time             `json:"next_maintenance"`
	Cost            float64                `json:"cost"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}
