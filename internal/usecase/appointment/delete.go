package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-admin/internal/audit"
	domain "github.com/BruksfildServices01/salon-admin/internal/domain/appointment"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit audit.Sink
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit audit.Sink,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute removes the appointment. Its history snapshot is kept as the
// last known state.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	id uint,
	actor string,
) error {

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return asBusiness(err, "appointment_not_found")
	}

	if err := uc.repo.DeleteAppointment(ctx, id); err != nil {
		return asBusiness(err, "appointment_not_found")
	}

	uc.audit.Track(ctx, audit.Event{
		EntityType: audit.EntityAppointment,
		EntityID:   id,
		Action:     audit.ActionDelete,
		Actor:      actor,
		Change:     audit.Change{Old: *ap},
	})

	return nil
}
