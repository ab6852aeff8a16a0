package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// PointsAwarder credits the customer of a completed appointment. It must be
// idempotent per appointment.
type PointsAwarder interface {
	AwardForAppointment(ctx context.Context, ap *models.Appointment) error
}

type Counter interface {
	Inc()
}

type CustomerCounter interface {
	CountByRole(ctx context.Context, role user.Role) (int64, error)
}

var (
	errNotOwner       = httperr.ErrForbidden("forbidden", "You can only manage your own appointments")
	errCustomerCancel = httperr.ErrForbidden("forbidden", "Customers can only cancel appointments")
	errScheduleChange = httperr.ErrForbidden("forbidden", "Only staff can reschedule appointments")
)

func required(field string) error {
	return httperr.ErrValidation("missing_field", field+" is required")
}
