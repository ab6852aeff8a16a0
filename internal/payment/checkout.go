package payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

var (
	ErrNotConfigured = httperr.ErrUnavailable("payments_unavailable", "Payments are not configured")
	errNotOwner      = httperr.ErrForbidden("forbidden", "You can only pay for your own appointments")
	errInvalidID     = httperr.ErrValidation("invalid_payment_id", "paymentId is required")
)

type AppointmentFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error)
}

// Checkout turns appointments into gateway checkouts. A nil gateway means
// payments are disabled.
type Checkout struct {
	gateway      Gateway
	appointments AppointmentFinder
}

func NewCheckout(gateway Gateway, appointments AppointmentFinder) *Checkout {
	return &Checkout{gateway: gateway, appointments: appointments}
}

func (c *Checkout) CreateIntent(ctx context.Context, actor auth.Principal, appointmentID uuid.UUID) (*Preference, error) {
	if c.gateway == nil {
		return nil, ErrNotConfigured
	}

	ap, err := c.appointments.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff() && ap.CustomerID != actor.UserID {
		return nil, errNotOwner
	}

	title, price := "Salon appointment", 0.0
	if ap.Service != nil {
		title, price = ap.Service.Name, ap.Service.Price
	}

	return c.gateway.CreatePreference(ctx, ap.ID.String(), []Item{{
		ID:       ap.ServiceID.String(),
		Title:    title,
		Price:    price,
		Quantity: 1,
	}})
}

func (c *Checkout) Confirm(ctx context.Context, paymentID int) (*Status, error) {
	if c.gateway == nil {
		return nil, ErrNotConfigured
	}
	if paymentID <= 0 {
		return nil, errInvalidID
	}
	return c.gateway.GetPayment(ctx, paymentID)
}
