package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/salon-admin/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-admin/internal/httperr"
)

// asBusiness turns a missing row into the given business code.
func asBusiness(err error, code string) error {
	if httperr.IsNotFound(err) {
		return httperr.ErrBusiness(code)
	}
	return err
}

func checkReferences(
	ctx context.Context,
	repo domain.Repository,
	clientID uint,
	serviceID uint,
	staffID *uint,
) error {

	if _, err := repo.GetClient(ctx, clientID); err != nil {
		return asBusiness(err, "client_not_found")
	}
	if _, err := repo.GetService(ctx, serviceID); err != nil {
		return asBusiness(err, "service_not_found")
	}
	if staffID != nil {
		if _, err := repo.GetStaff(ctx, *staffID); err != nil {
			return asBusiness(err, "staff_not_found")
		}
	}
	return nil
}
