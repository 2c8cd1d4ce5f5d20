package audit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/salon-admin/internal/models"
)

// AppointmentSource loads the joined appointment view.
// A missing appointment is reported as gorm.ErrRecordNotFound.
type AppointmentSource interface {
	GetAppointmentDetails(ctx context.Context, id uint) (*models.AppointmentDetails, error)
}

// SnapshotRecorder keeps exactly one AppointmentHistory row per appointment,
// overwritten on every refresh.
type SnapshotRecorder struct {
	db     *gorm.DB
	source AppointmentSource
	now    func() time.Time
}

func NewSnapshotRecorder(db *gorm.DB, source AppointmentSource) *SnapshotRecorder {
	return &SnapshotRecorder{db: db, source: source, now: time.Now}
}

var snapshotColumns = []string{
	"client_name",
	"service_name",
	"service_price",
	"service_category",
	"service_description",
	"appointment_date",
	"start_time",
	"end_time",
	"notes",
	"status",
	"staff_id",
	"changed_by",
	"created_at",
}

// Refresh upserts the snapshot of appointmentID. It returns false without
// error when the appointment no longer exists.
func (s *SnapshotRecorder) Refresh(
	ctx context.Context,
	appointmentID uint,
	actor string,
) (bool, error) {

	details, err := s.source.GetAppointmentDetails(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: load appointment %d: %w", ErrPersistence, appointmentID, err)
	}

	row := models.AppointmentHistory{
		AppointmentID:      details.ID,
		ClientName:         strings.TrimSpace(details.ClientFirstName + " " + details.ClientLastName),
		ServiceName:        details.ServiceName,
		ServicePrice:       details.ServicePrice,
		ServiceCategory:    details.ServiceCategory,
		ServiceDescription: details.ServiceDescription,
		AppointmentDate:    details.AppointmentDate,
		StartTime:          details.StartTime,
		EndTime:            details.EndTime,
		Notes:              details.Notes,
		Status:             details.Status,
		StaffID:            details.StaffID,
		ChangedBy:          ResolveActor(actor),
		CreatedAt:          s.now(),
	}

	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "appointment_id"}},
			DoUpdates: clause.AssignmentColumns(snapshotColumns),
		}).
		Create(&row).Error; err != nil {
		return false, fmt.Errorf("%w: upsert snapshot %d: %w", ErrPersistence, appointmentID, err)
	}

	return true, nil
}
