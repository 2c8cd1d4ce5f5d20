package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-admin/internal/audit"
	domain "github.com/BruksfildServices01/salon-admin/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-admin/internal/models"
)

// UpdateAppointmentInput is a partial update: nil fields are left as is.
type UpdateAppointmentInput struct {
	ID uint

	ClientID  *uint
	ServiceID *uint
	StaffID   *uint

	Date      *string
	StartTime *string
	EndTime   *string
	Notes     *string
	Status    *string

	Actor string
}

type UpdateAppointment struct {
	repo  domain.Repository
	audit audit.Sink
	loc   *time.Location
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit audit.Sink,
	loc *time.Location,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
		loc:   loc,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.ID)
	if err != nil {
		return nil, asBusiness(err, "appointment_not_found")
	}
	before := *ap

	if in.ClientID != nil {
		ap.ClientID = *in.ClientID
	}
	if in.ServiceID != nil {
		ap.ServiceID = *in.ServiceID
	}
	if in.StaffID != nil {
		id := *in.StaffID
		ap.StaffID = &id
	}
	if in.Date != nil {
		if ap.AppointmentDate, err = domain.ParseDate(*in.Date, uc.loc); err != nil {
			return nil, err
		}
	}
	if in.StartTime != nil {
		ap.StartTime = *in.StartTime
	}
	if in.EndTime != nil {
		ap.EndTime = *in.EndTime
	}
	if in.Notes != nil {
		ap.Notes = *in.Notes
	}
	if in.Status != nil {
		status, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		ap.Status = string(status)
	}

	if err := domain.ValidateTimes(ap.StartTime, ap.EndTime); err != nil {
		return nil, err
	}
	if err := checkReferences(ctx, uc.repo, ap.ClientID, ap.ServiceID, in.StaffID); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Track(ctx, audit.Event{
		EntityType: audit.EntityAppointment,
		EntityID:   ap.ID,
		Action:     audit.ActionUpdate,
		Actor:      in.Actor,
		Change:     audit.Change{Old: before, New: *ap},
	})

	return ap, nil
}
