package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewDeleteAppointment(repo domain.Repository, recorder audit.Recorder) *DeleteAppointment {
	return &DeleteAppointment{repo: repo, audit: recorder}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	actor auth.Principal,
	id uuid.UUID,
) error {

	ap, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.IsStaff() && ap.CustomerID != actor.UserID {
		return errNotOwner
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.audit.Record(ctx, audit.Event{
		ActorID:  &actor.UserID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: id.String(),
		Metadata: map[string]any{"status": ap.Status},
	})
	return nil
}
