package models

import "time"

type Appointment struct {
	ID uint `gorm:"column:appointment_id;primaryKey" json:"appointment_id"`

	ClientID  uint  `gorm:"not null;index" json:"client_id"`
	ServiceID uint  `gorm:"not null;index" json:"service_id"`
	StaffID   *uint `gorm:"index" json:"staff_id"`

	AppointmentDate time.Time `gorm:"type:date;not null" json:"appointment_date"`
	StartTime       string    `gorm:"size:5;not null" json:"start_time"`
	EndTime         string    `gorm:"size:5;not null" json:"end_time"`

	Notes  string `gorm:"size:255" json:"notes"`
	Status string `gorm:"size:20;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppointmentDetails is the appointment joined with its client and service.
type AppointmentDetails struct {
	Appointment

	ClientFirstName    string  `json:"client_first_name"`
	ClientLastName     string  `json:"client_last_name"`
	ServiceName        string  `json:"service_name"`
	ServiceDescription string  `json:"service_description"`
	ServicePrice       float64 `json:"service_price"`
	ServiceCategory    string  `json:"service_category"`
}
