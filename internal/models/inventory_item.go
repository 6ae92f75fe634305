package models

import "time"

type InventoryItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name       string  `gorm:"size:100;not null" json:"name"`
	PartNumber string  `gorm:"size:50;uniqueIndex;not null" json:"part_number"`
	Quantity   int     `gorm:"not null;default:0;check:quantity >= 0" json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (InventoryItem) TableName() string {
	return "inventory"
}
