package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

// Execute loads a populated appointment. Customers may only read their own.
func (uc *GetAppointment) Execute(
	ctx context.Context,
	actor auth.Principal,
	id uuid.UUID,
) (*models.Appointment, error) {

	ap, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff() && ap.CustomerID != actor.UserID {
		return nil, errNotOwner
	}
	return ap, nil
}
