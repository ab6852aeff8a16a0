package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Window is the half-open interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Valid() bool {
	return w.End.After(w.Start)
}

func (w Window) Minutes() float64 {
	return w.End.Sub(w.Start).Minutes()
}

// Overlaps reports whether two windows share any instant. Windows that only
// touch (one ends exactly when the other starts) do not overlap.
func (w Window) Overlaps(o Window) bool {
	return w.Start.Before(o.End) && o.Start.Before(w.End)
}

type ServiceFinder interface {
	FindService(ctx context.Context, id uuid.UUID) (*models.Service, error)
}

// WindowFor derives the booking window from the service duration.
func WindowFor(svc *models.Service, start time.Time) Window {
	return Window{
		Start: start,
		End:   start.Add(time.Duration(svc.Duration) * time.Minute),
	}
}

// DeriveWindow resolves the service and returns the window it occupies when
// booked at start. The service must exist.
func DeriveWindow(
	ctx context.Context,
	services ServiceFinder,
	serviceID uuid.UUID,
	start time.Time,
) (Window, *models.Service, error) {

	svc, err := services.FindService(ctx, serviceID)
	if err != nil {
		return Window{}, nil, err
	}
	if svc == nil {
		return Window{}, nil, ErrServiceNotFound
	}

	return WindowFor(svc, start), svc, nil
}
