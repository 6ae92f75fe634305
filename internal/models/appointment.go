package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerName  string `gorm:"size:100;not null" json:"customer_name"`
	CustomerPhone string `gorm:"size:20" json:"customer_phone"`
	CustomerEmail string `gorm:"size:100" json:"customer_email"`

	VehicleMake  string `gorm:"size:50" json:"vehicle_make"`
	VehicleModel string `gorm:"size:50" json:"vehicle_model"`
	VehicleYear  int    `json:"vehicle_year"`
	LicensePlate string `gorm:"size:20" json:"license_plate"`

	ServiceType string    `gorm:"size:100;not null" json:"service_type"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Description string    `gorm:"size:500" json:"description"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	EmployeeID *uint     `json:"employee_id"`
	Employee   *Employee `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"employee,omitempty"`

	LaborCost float64 `json:"labor_cost"`

	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
