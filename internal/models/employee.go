package models

import "time"

type Employee struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Position string `gorm:"size:50" json:"position"`
	Phone    string `gorm:"size:20" json:"phone"`
	Email    string `gorm:"size:100" json:"email"`

	// Stored in the legacy "salary" column but used as an hourly rate by
	// the payroll calculation.
	HourlyRate float64 `gorm:"column:salary" json:"hourly_rate"`

	StartDate *time.Time `json:"start_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
