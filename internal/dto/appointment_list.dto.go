package dto

import (
	"strings"

	"github.com/BruksfildServices01/salon-admin/internal/models"
)

type AppointmentListDTO struct {
	ID                 uint    `json:"appointment_id"`
	ClientID           uint    `json:"client_id"`
	ServiceID          uint    `json:"service_id"`
	StaffID            *uint   `json:"staff_id"`
	AppointmentDate    string  `json:"appointment_date"`
	StartTime          string  `json:"start_time"`
	EndTime            string  `json:"end_time"`
	Status             string  `json:"status"`
	Notes              string  `json:"notes"`
	ClientFirstName    string  `json:"client_first_name"`
	ClientLastName     string  `json:"client_last_name"`
	ClientName         string  `json:"client_name"`
	ServiceName        string  `json:"service_name"`
	ServiceDescription string  `json:"service_description"`
	ServicePrice       float64 `json:"service_price"`
	ServiceCategory    string  `json:"service_category"`
}

func NewAppointmentListDTO(d models.AppointmentDetails) AppointmentListDTO {
	return AppointmentListDTO{
		ID:                 d.ID,
		ClientID:           d.ClientID,
		ServiceID:          d.ServiceID,
		StaffID:            d.StaffID,
		AppointmentDate:    d.AppointmentDate.Format("2006-01-02"),
		StartTime:          d.StartTime,
		EndTime:            d.EndTime,
		Status:             d.Status,
		Notes:              d.Notes,
		ClientFirstName:    d.ClientFirstName,
		ClientLastName:     d.ClientLastName,
		ClientName:         strings.TrimSpace(d.ClientFirstName + " " + d.ClientLastName),
		ServiceName:        d.ServiceName,
		ServiceDescription: d.ServiceDescription,
		ServicePrice:       d.ServicePrice,
		ServiceCategory:    d.ServiceCategory,
	}
}

func NewAppointmentList(rows []models.AppointmentDetails) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, NewAppointmentListDTO(r))
	}
	return out
}
