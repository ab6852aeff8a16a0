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

type UpdateInput struct {
	Actor auth.Principal
	ID    uuid.UUID

	Status *string
	Notes  *string

	// Rescheduling, staff and admins only.
	CustomerID *uuid.UUID
	StaffID    *uuid.UUID
	ServiceID  *uuid.UUID
	StartTime  *time.Time
	EndTime    *time.Time
}

func (in UpdateInput) reschedules() bool {
	return in.CustomerID != nil || in.StaffID != nil || in.ServiceID != nil ||
		in.StartTime != nil || in.EndTime != nil
}

type UpdateAppointment struct {
	repo           domain.Repository
	policy         domain.TransitionPolicy
	audit          audit.Recorder
	points         PointsAwarder
	log            *slog.Logger
	enforceOverlap bool
}

func NewUpdateAppointment(
	repo domain.Repository,
	policy domain.TransitionPolicy,
	recorder audit.Recorder,
	points PointsAwarder,
	log *slog.Logger,
	enforceOverlap bool,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:           repo,
		policy:         policy,
		audit:          recorder,
		points:         points,
		log:            log,
		enforceOverlap: enforceOverlap,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Customer restrictions
	// --------------------------------------------------
	if !in.Actor.IsStaff() {
		if ap.CustomerID != in.Actor.UserID {
			return nil, errNotOwner
		}
		if in.reschedules() {
			return nil, errScheduleChange
		}
		if in.Status != nil && *in.Status != ap.Status && *in.Status != string(domain.StatusCancelled) {
			return nil, errCustomerCancel
		}
	}

	previous := ap.Status

	// --------------------------------------------------
	// Status
	// --------------------------------------------------
	if in.Status != nil {
		next, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		if err := uc.policy.CanTransition(domain.Status(ap.Status), next); err != nil {
			return nil, err
		}
		ap.Status = string(next)
	}

	if in.Notes != nil {
		ap.Notes = validators.CleanNotes(*in.Notes)
	}

	// --------------------------------------------------
	// Rescheduling
	// --------------------------------------------------
	if in.reschedules() {
		if err := uc.reschedule(ctx, ap, in); err != nil {
			return nil, err
		}
	}

	if err := uc.repo.Update(ctx, ap); err != nil {
		return nil, err
	}

	if ap.Status == string(domain.StatusCompleted) {
		if err := uc.points.AwardForAppointment(ctx, ap); err != nil {
			uc.log.ErrorContext(ctx, "award points failed",
				slog.String("appointment_id", ap.ID.String()),
				slog.Any("error", err),
			)
		}
	}

	uc.audit.Record(ctx, audit.Event{
		ActorID:  &in.Actor.UserID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: ap.ID.String(),
		Metadata: map[string]any{
			"from": previous,
			"to":   ap.Status,
		},
	})

	// linked ids may have changed
	return uc.repo.FindByID(ctx, ap.ID)
}

func (uc *UpdateAppointment) reschedule(
	ctx context.Context,
	ap *models.Appointment,
	in UpdateInput,
) error {

	if in.CustomerID != nil {
		ap.CustomerID = *in.CustomerID
	}
	if in.StaffID != nil {
		ap.StaffID = *in.StaffID
	}

	derive := in.StartTime != nil || in.ServiceID != nil
	if in.ServiceID != nil {
		ap.ServiceID = *in.ServiceID
	}
	if in.StartTime != nil {
		ap.StartTime = *in.StartTime
	}

	switch {
	case in.EndTime != nil:
		if in.ServiceID != nil {
			if _, err := uc.repo.FindService(ctx, ap.ServiceID); err != nil {
				return err
			}
		}
		ap.EndTime = *in.EndTime
	case derive:
		w, _, err := domain.DeriveWindow(ctx, uc.repo, ap.ServiceID, ap.StartTime)
		if err != nil {
			return err
		}
		ap.EndTime = w.End
	}

	window := domain.Window{Start: ap.StartTime, End: ap.EndTime}
	if !window.Valid() {
		return domain.ErrInvalidWindow
	}

	if uc.enforceOverlap && ap.Status != string(domain.StatusCancelled) {
		conflict, err := uc.repo.HasTimeConflict(ctx, ap.StaffID, window.Start, window.End, ap.ID)
		if err != nil {
			return err
		}
		if conflict {
			return domain.ErrTimeConflict
		}
	}

	ap.Customer, ap.Staff, ap.Service = nil, nil, nil
	return nil
}
