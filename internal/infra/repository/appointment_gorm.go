package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-admin/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-admin/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

var _ domain.Repository = (*AppointmentGormRepository)(nil)

// --------------------------------------------------
// References
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *AppointmentGormRepository) GetStaff(
	ctx context.Context,
	id uint,
) (*models.Staff, error) {

	var staff models.Staff
	if err := r.db.WithContext(ctx).First(&staff, id).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// --------------------------------------------------
// Joined view
// --------------------------------------------------

const detailsSelect = `a.*,
	c.first_name AS client_first_name,
	c.last_name AS client_last_name,
	s.name AS service_name,
	s.description AS service_description,
	s.price AS service_price,
	s.category AS service_category`

func (r *AppointmentGormRepository) details(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("appointments AS a").
		Select(detailsSelect).
		Joins("JOIN clients c ON c.client_id = a.client_id").
		Joins("JOIN services s ON s.service_id = a.service_id")
}

func (r *AppointmentGormRepository) GetAppointmentDetails(
	ctx context.Context,
	id uint,
) (*models.AppointmentDetails, error) {

	var d models.AppointmentDetails
	if err := r.details(ctx).
		Where("a.appointment_id = ?", id).
		Take(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *AppointmentGormRepository) ListAppointmentDetails(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.AppointmentDetails, error) {

	q := r.details(ctx)

	if f.Status != "" {
		q = q.Where("a.status = ?", f.Status)
	}
	if f.StaffID != nil {
		q = q.Where("a.staff_id = ?", *f.StaffID)
	}
	if f.ClientID != nil {
		q = q.Where("a.client_id = ?", *f.ClientID)
	}
	if f.From != nil {
		q = q.Where("a.appointment_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("a.appointment_date <= ?", *f.To)
	}

	var out []models.AppointmentDetails
	if err := q.
		Order("a.appointment_date ASC").
		Order("a.start_time ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
