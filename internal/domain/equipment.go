package domain

import "time"

// EquipmentStatus enumerates operational states of a piece of equipment.
type EquipmentStatus string

const (
	EquipmentStatusActive      EquipmentStatus = "Active"
	EquipmentStatusMaintenance EquipmentStatus = "Maintenance"
	EquipmentStatusRetired     EquipmentStatus = "Retired"
	EquipmentStatusOutOfOrder  EquipmentStatus = "Out of Order"
)

// IsValid reports whether the status is a known value.
func (s EquipmentStatus) IsValid() bool {
	switch s {
	case EquipmentStatusActive, EquipmentStatusMaintenance, EquipmentStatusRetired, EquipmentStatusOutOfOrder:
		return true
	}
	return false
}

// Equipment is an inventory record for a device owned by a unit.
type Equipment struct {
	ID              string
	UnitID          string
	Name            string
	Category        string
	SerialNumber    string
	Manufacturer    string
	Model           string
	PurchaseDate    *time.Time
	WarrantyExpiry  *time.Time
	Location        string
	Status          EquipmentStatus
	LastMaintenance *time.Time
	NextMaintenance *time.Time
	Cost            float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
