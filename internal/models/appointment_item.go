package models

import "time"

// Item types for appointment line items.
const (
	ItemTypeLabor   = "labor"
	ItemTypePart    = "part"
	ItemTypeService = "service"
)

// AppointmentItem is an append-only charge record. Rows are written once by
// the settlement engine and never updated or deleted.
type AppointmentItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"index;not null" json:"appointment_id"`

	ItemType string `gorm:"size:20;not null" json:"item_type"`

	InventoryItemID *uint `json:"inventory_item_id"`

	Description string  `gorm:"size:255" json:"description"`
	Quantity    int     `gorm:"not null;default:1" json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`

	CreatedAt time.Time `json:"created_at"`
}
