package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-admin/internal/models"
)

// ListFilter narrows ListAppointmentDetails. Zero fields are ignored.
type ListFilter struct {
	Status   string
	StaffID  *uint
	ClientID *uint
	From     *time.Time
	To       *time.Time
}

type Repository interface {
	// -------- References --------
	GetClient(ctx context.Context, id uint) (*models.Client, error)
	GetService(ctx context.Context, id uint) (*models.Service, error)
	GetStaff(ctx context.Context, id uint) (*models.Staff, error)

	// -------- Appointment --------
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error
	DeleteAppointment(ctx context.Context, id uint) error

	// -------- Joined view --------
	GetAppointmentDetails(ctx context.Context, id uint) (*models.AppointmentDetails, error)
	ListAppointmentDetails(ctx context.Context, f ListFilter) ([]models.AppointmentDetails, error)
}
