package models

import "time"

type Shift struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EmployeeID uint     `gorm:"index;not null" json:"employee_id"`
	Employee   Employee `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"employee,omitempty"`

	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	Role  string `gorm:"size:50" json:"role"`
	Notes string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
