package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// IsStaffAvailable reports whether staffID has no appointment in existing
// that overlaps [start, end). Appointments of other staff members are ignored.
func IsStaffAvailable(
	staffID uuid.UUID,
	start time.Time,
	end time.Time,
	existing []models.Appointment,
) bool {

	want := Window{Start: start, End: end}
	for i := range existing {
		ap := &existing[i]
		if ap.StaffID != staffID {
			continue
		}
		if want.Overlaps(Window{Start: ap.StartTime, End: ap.EndTime}) {
			return false
		}
	}
	return true
}
