package appointment

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type BookInput struct {
	Actor auth.Principal

	// Ignored for customers, who always book for themselves.
	CustomerID uuid.UUID
	StaffID    uuid.UUID
	ServiceID  uuid.UUID

	StartTime time.Time
	Notes     string

	// Honoured for staff and admins only.
	EndTime *time.Time
	Status  string
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo           domain.Repository
	audit          audit.Recorder
	points         PointsAwarder
	booked         Counter
	log            *slog.Logger
	enforceOverlap bool
}

func NewBookAppointment(
	repo domain.Repository,
	recorder audit.Recorder,
	points PointsAwarder,
	booked Counter,
	log *slog.Logger,
	enforceOverlap bool,
) *BookAppointment {
	return &BookAppointment{
		repo:           repo,
		audit:          recorder,
		points:         points,
		booked:         booked,
		log:            log,
		enforceOverlap: enforceOverlap,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookInput,
) (*models.Appointment, error) {

	customerID := in.CustomerID
	if !in.Actor.IsStaff() {
		customerID = in.Actor.UserID
	}

	switch {
	case customerID == uuid.Nil:
		return nil, required("customer")
	case in.StaffID == uuid.Nil:
		return nil, required("staff")
	case in.ServiceID == uuid.Nil:
		return nil, required("service")
	case in.StartTime.IsZero():
		return nil, required("startTime")
	}

	// --------------------------------------------------
	// Window from service duration
	// --------------------------------------------------
	window, svc, err := domain.DeriveWindow(ctx, uc.repo, in.ServiceID, in.StartTime)
	if err != nil {
		return nil, err
	}

	status := domain.InitialStatus()
	if in.Actor.IsStaff() {
		if in.EndTime != nil {
			window.End = *in.EndTime
		}
		if in.Status != "" {
			if status, err = domain.ParseStatus(in.Status); err != nil {
				return nil, err
			}
		}
	}

	if !window.Valid() {
		return nil, domain.ErrInvalidWindow
	}

	// --------------------------------------------------
	// Optional overlap guard
	// --------------------------------------------------
	if uc.enforceOverlap {
		conflict, err := uc.repo.HasTimeConflict(ctx, in.StaffID, window.Start, window.End, uuid.Nil)
		if err != nil {
			return nil, err
		}
		if conflict {
			return nil, domain.ErrTimeConflict
		}
	}

	ap := &models.Appointment{
		CustomerID: customerID,
		StaffID:    in.StaffID,
		ServiceID:  svc.ID,
		StartTime:  window.Start,
		EndTime:    window.End,
		Status:     string(status),
		Notes:      validators.CleanNotes(in.Notes),
	}

	if err := uc.repo.Create(ctx, ap); err != nil {
		return nil, err
	}
	ap.Service = svc

	uc.booked.Inc()

	if status == domain.StatusCompleted {
		if err := uc.points.AwardForAppointment(ctx, ap); err != nil {
			uc.log.ErrorContext(ctx, "award points failed",
				slog.String("appointment_id", ap.ID.String()),
				slog.Any("error", err),
			)
		}
	}

	uc.audit.Record(ctx, audit.Event{
		ActorID:  &in.Actor.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: ap.ID.String(),
		Metadata: map[string]any{
			"staff":     ap.StaffID,
			"service":   ap.ServiceID,
			"startTime": ap.StartTime,
		},
	})

	return ap, nil
}
