package appointment

import (
	"slices"
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var AllStatuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}

func (s Status) Valid() bool {
	return slices.Contains(AllStatuses, s)
}

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Transitions
// ===============================

// TransitionPolicy decides whether a status may be overwritten by another.
type TransitionPolicy interface {
	CanTransition(from, to Status) error
}

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// StrictTransitions only allows pending→confirmed→completed and cancelling
// a pending or confirmed appointment. Re-applying the current status is a no-op.
type StrictTransitions struct{}

func (StrictTransitions) CanTransition(from, to Status) error {
	if !to.Valid() {
		return ErrInvalidStatus
	}
	if from == to {
		return nil
	}
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrValidation(
		"invalid_transition",
		"Cannot change appointment status from "+string(from)+" to "+string(to),
	)
}

// AnyTransition lets any valid status overwrite any other.
type AnyTransition struct{}

func (AnyTransition) CanTransition(_, to Status) error {
	if !to.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

func PolicyFor(strict bool) TransitionPolicy {
	if strict {
		return StrictTransitions{}
	}
	return AnyTransition{}
}
