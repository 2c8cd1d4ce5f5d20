package models

import "time"

type Service struct {
	ID uint `gorm:"column:service_id;primaryKey" json:"service_id"`

	Name            string  `gorm:"size:100;not null" json:"name"`
	DurationMinutes int     `gorm:"not null" json:"duration_minutes"`
	Price           float64 `gorm:"type:numeric(10,2);not null" json:"price"`
	Description     string  `gorm:"size:255" json:"description"`
	Category        string  `gorm:"size:50" json:"category"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
