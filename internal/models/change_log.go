package models

import "time"

// ChangeLog is one append-only audit entry. Changes holds the JSON text
// {"old": ..., "new": ...} with sensitive keys already redacted.
type ChangeLog struct {
	ID uint `gorm:"column:log_id;primaryKey" json:"log_id"`

	EntityType string `gorm:"size:20;not null;index" json:"entity_type"`
	EntityID   uint   `gorm:"not null;index" json:"entity_id"`
	Action     string `gorm:"size:10;not null" json:"action"`
	ChangedBy  string `gorm:"size:100;not null" json:"changed_by"`
	Changes    string `gorm:"type:text;not null" json:"changes"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (ChangeLog) TableName() string { return "ChangeLogs" }

// AppointmentHistory is the latest denormalized snapshot of an appointment.
type AppointmentHistory struct {
	ID            uint `gorm:"column:history_id;primaryKey" json:"history_id"`
	AppointmentID uint `gorm:"uniqueIndex;not null" json:"appointment_id"`

	ClientName         string  `gorm:"size:200" json:"client_name"`
	ServiceName        string  `gorm:"size:100" json:"service_name"`
	ServicePrice       float64 `gorm:"type:numeric(10,2)" json:"service_price"`
	ServiceCategory    string  `gorm:"size:50" json:"service_category"`
	ServiceDescription string  `gorm:"size:255" json:"service_description"`

	AppointmentDate time.Time `gorm:"type:date" json:"appointment_date"`
	StartTime       string    `gorm:"size:5" json:"start_time"`
	EndTime         string    `gorm:"size:5" json:"end_time"`
	Notes           string    `gorm:"size:255" json:"notes"`
	Status          string    `gorm:"size:20" json:"status"`
	StaffID         *uint     `json:"staff_id"`

	ChangedBy string    `gorm:"size:100" json:"changed_by"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (AppointmentHistory) TableName() string { return "AppointmentHistory" }
