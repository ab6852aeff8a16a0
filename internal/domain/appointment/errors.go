package appointment

import "github.com/BruksfildServices01/salon-scheduler/internal/httperr"

var (
	ErrServiceNotFound     = httperr.ErrNotFound("service_not_found", "Service not found")
	ErrAppointmentNotFound = httperr.ErrNotFound("appointment_not_found", "Appointment not found")
	ErrInvalidStatus       = httperr.ErrValidation("invalid_status", "Invalid appointment status")
	ErrInvalidWindow       = httperr.ErrValidation("invalid_window", "End time must be after start time")
	ErrTimeConflict        = httperr.ErrValidation("time_conflict", "Staff member is already booked for this time")
)
