package models

import "time"

const (
	TransactionTypeIncome = "income"

	TransactionCategoryService = "service"
)

type Transaction struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Reference string `gorm:"size:36;uniqueIndex;not null" json:"reference"`

	AppointmentID *uint `json:"appointment_id"`

	Amount   float64 `gorm:"not null" json:"amount"`
	TxType   string  `gorm:"size:20;not null;column:tx_type" json:"tx_type"`
	Category string  `gorm:"size:50" json:"category"`
	Note     string  `gorm:"size:255" json:"note"`

	RecordedAt time.Time `json:"recorded_at"`
	CreatedAt  time.Time `json:"created_at"`
}
