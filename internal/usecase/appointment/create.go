package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-admin/internal/audit"
	domain "github.com/BruksfildServices01/salon-admin/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-admin/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID  uint
	ServiceID uint
	StaffID   *uint

	Date      string
	StartTime string
	EndTime   string
	Notes     string
	Status    string

	Actor string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit audit.Sink
	loc   *time.Location
}

func NewCreateAppointment(
	repo domain.Repository,
	audit audit.Sink,
	loc *time.Location,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		loc:   loc,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	date, err := domain.ParseDate(in.Date, uc.loc)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateTimes(in.StartTime, in.EndTime); err != nil {
		return nil, err
	}

	status := domain.InitialStatus()
	if in.Status != "" {
		if status, err = domain.ParseStatus(in.Status); err != nil {
			return nil, err
		}
	}

	if err := checkReferences(ctx, uc.repo, in.ClientID, in.ServiceID, in.StaffID); err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		ClientID:        in.ClientID,
		ServiceID:       in.ServiceID,
		StaffID:         in.StaffID,
		AppointmentDate: date,
		StartTime:       in.StartTime,
		EndTime:         in.EndTime,
		Notes:           in.Notes,
		Status:          string(status),
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Track(ctx, audit.Event{
		EntityType: audit.EntityAppointment,
		EntityID:   ap.ID,
		Action:     audit.ActionCreate,
		Actor:      in.Actor,
		Change:     audit.Change{New: *ap},
	})

	return ap, nil
}
