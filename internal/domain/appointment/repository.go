package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Repository interface {
	ServiceFinder

	// -------- Appointment (create / conflict) --------
	Create(ctx context.Context, ap *models.Appointment) error

	HasTimeConflict(
		ctx context.Context,
		staffID uuid.UUID,
		start time.Time,
		end time.Time,
		exclude uuid.UUID,
	) (bool, error)

	// -------- Appointment (state change) --------
	FindByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error)
	Update(ctx context.Context, ap *models.Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error

	// -------- Listing --------
	// List returns populated appointments ordered by start time.
	List(ctx context.Context, f ListFilter) ([]models.Appointment, error)
	ListPage(ctx context.Context, q ListQuery) ([]models.Appointment, int64, error)

	// ListForStats returns every appointment with only its service price
	// preloaded.
	ListForStats(ctx context.Context) ([]models.Appointment, error)
}
