package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-admin/internal/audit"
	domain "github.com/BruksfildServices01/salon-admin/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-admin/internal/models"
)

// DecideAppointmentInput confirms (with a staff member) or declines
// (with a reason) an appointment.
type DecideAppointmentInput struct {
	ID      uint
	Status  string
	StaffID *uint
	Reason  string

	Actor string
}

type DecideAppointment struct {
	repo  domain.Repository
	audit audit.Sink
}

func NewDecideAppointment(
	repo domain.Repository,
	audit audit.Sink,
) *DecideAppointment {
	return &DecideAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DecideAppointment) Execute(
	ctx context.Context,
	in DecideAppointmentInput,
) (*models.Appointment, error) {

	status, err := domain.ParseDecision(in.Status)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.ID)
	if err != nil {
		return nil, asBusiness(err, "appointment_not_found")
	}
	before := *ap

	switch status {
	case domain.StatusConfirmed:
		if err := domain.Confirm(ap, in.StaffID); err != nil {
			return nil, err
		}
		if _, err := uc.repo.GetStaff(ctx, *in.StaffID); err != nil {
			return nil, asBusiness(err, "staff_not_found")
		}
	case domain.StatusDeclined:
		if err := domain.Decline(ap, in.StaffID, in.Reason); err != nil {
			return nil, err
		}
		if ap.StaffID != nil {
			if _, err := uc.repo.GetStaff(ctx, *ap.StaffID); err != nil {
				return nil, asBusiness(err, "staff_not_found")
			}
		}
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// confirm and decline are recorded as plain updates
	uc.audit.Track(ctx, audit.Event{
		EntityType: audit.EntityAppointment,
		EntityID:   ap.ID,
		Action:     audit.ActionUpdate,
		Actor:      in.Actor,
		Change:     audit.Change{Old: before, New: *ap},
	})

	return ap, nil
}
