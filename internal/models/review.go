package models

import "time"

type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Author  string `gorm:"size:100;not null" json:"author"`
	Rating  int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment string `gorm:"size:1000" json:"comment"`

	Approved bool `gorm:"default:false" json:"approved"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
