package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-admin/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-admin/internal/models"
)

// ======================================================
// GET
// ======================================================

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	id uint,
) (*models.AppointmentDetails, error) {

	d, err := uc.repo.GetAppointmentDetails(ctx, id)
	if err != nil {
		return nil, asBusiness(err, "appointment_not_found")
	}
	return d, nil
}

// ======================================================
// LIST
// ======================================================

type ListAppointmentsInput struct {
	Status   string
	StaffID  *uint
	ClientID *uint
	From     string
	To       string
}

type ListAppointments struct {
	repo domain.Repository
	loc  *time.Location
}

func NewListAppointments(repo domain.Repository, loc *time.Location) *ListAppointments {
	return &ListAppointments{repo: repo, loc: loc}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	in ListAppointmentsInput,
) ([]models.AppointmentDetails, error) {

	f := domain.ListFilter{
		StaffID:  in.StaffID,
		ClientID: in.ClientID,
	}

	if in.Status != "" {
		s, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		f.Status = string(s)
	}
	if in.From != "" {
		from, err := domain.ParseDate(in.From, uc.loc)
		if err != nil {
			return nil, err
		}
		f.From = &from
	}
	if in.To != "" {
		to, err := domain.ParseDate(in.To, uc.loc)
		if err != nil {
			return nil, err
		}
		f.To = &to
	}

	return uc.repo.ListAppointmentDetails(ctx, f)
}
