// Package seed fills a development database with plausible appointment
// history.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const (
	BatchSize = 100

	minPerDay = 8
	maxPerDay = 15

	sampleNote = "Special request or note"
)

type AppointmentStore interface {
	CreateBatch(ctx context.Context, aps []models.Appointment) error
	Create(ctx context.Context, ap *models.Appointment) error
	DeleteAll(ctx context.Context) (int64, error)
}

type UserStore interface {
	ListByRole(ctx context.Context, role user.Role) ([]models.User, error)
	Update(ctx context.Context, u *models.User) error
}

// ======================================================
// Generator
// ======================================================

// Generator produces appointments for every open day between from and now.
// Only windows inside the staff member's working hours that do not overlap
// an already generated appointment are kept.
type Generator struct {
	rnd *rand.Rand
	loc *time.Location
	now time.Time
}

func NewGenerator(rnd *rand.Rand, loc *time.Location, now time.Time) *Generator {
	if loc == nil {
		loc = time.UTC
	}
	return &Generator{rnd: rnd, loc: loc, now: now.In(loc)}
}

func (g *Generator) Generate(from time.Time, staff, customers []models.User) []models.Appointment {
	if len(staff) == 0 || len(customers) == 0 {
		return nil
	}

	var out []models.Appointment

	y, m, d := from.In(g.loc).Date()
	for day := time.Date(y, m, d, 0, 0, 0, 0, g.loc); !day.After(g.now); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Sunday {
			continue
		}

		attempts := minPerDay + g.rnd.IntN(maxPerDay-minPerDay+1)

		for i := 0; i < attempts; i++ {
			ap, ok := g.attempt(day, staff, customers, out)
			if ok {
				out = append(out, ap)
			}
		}
	}

	return out
}

func (g *Generator) attempt(
	day time.Time,
	staff []models.User,
	customers []models.User,
	accepted []models.Appointment,
) (models.Appointment, bool) {

	member := &staff[g.rnd.IntN(len(staff))]
	if len(member.Services) == 0 {
		return models.Appointment{}, false
	}
	svc := &member.Services[g.rnd.IntN(len(member.Services))]

	from, to, open := domain.DayHours(day, member.WorkingHours)
	if !open || to <= from {
		return models.Appointment{}, false
	}

	// wall clock, so DST changes do not shift the start
	offset := int(from) + g.rnd.IntN(int(to-from))
	y, m, d := day.Date()
	start := time.Date(y, m, d, offset/60, offset%60, 0, 0, g.loc)

	w := domain.WindowFor(svc, start)
	if !domain.FitsWorkingHours(w, member.WorkingHours) {
		return models.Appointment{}, false
	}
	if !domain.IsStaffAvailable(member.ID, w.Start, w.End, accepted) {
		return models.Appointment{}, false
	}

	ap := models.Appointment{
		ID:         uuid.New(),
		CustomerID: customers[g.rnd.IntN(len(customers))].ID,
		StaffID:    member.ID,
		ServiceID:  svc.ID,
		StartTime:  w.Start,
		EndTime:    w.End,
		Status:     string(g.status(start.Before(g.now))),
	}
	if g.rnd.Float64() > 0.7 {
		ap.Notes = sampleNote
	}
	return ap, true
}

// status is completed three times out of four for past appointments.
func (g *Generator) status(past bool) domain.Status {
	if past {
		if g.rnd.IntN(4) == 3 {
			return domain.StatusCancelled
		}
		return domain.StatusCompleted
	}
	if g.rnd.IntN(2) == 0 {
		return domain.StatusPending
	}
	return domain.StatusConfirmed
}

// ======================================================
// Writers
// ======================================================

// Insert writes aps in batches. When a batch fails its records are retried
// one by one and the failing ones are logged and skipped. It returns how many
// were stored.
func Insert(ctx context.Context, store AppointmentStore, aps []models.Appointment, log *slog.Logger) int {
	stored := 0
	for start := 0; start < len(aps); start += BatchSize {
		end := min(start+BatchSize, len(aps))
		batch := aps[start:end]

		err := store.CreateBatch(ctx, batch)
		if err == nil {
			stored += len(batch)
			continue
		}
		log.Warn("batch insert failed, retrying records individually", "offset", start, "error", err)

		for i := range batch {
			if err := store.Create(ctx, &batch[i]); err != nil {
				log.Warn("skipping appointment", "id", batch[i].ID, "start", batch[i].StartTime, "error", err)
				continue
			}
			stored++
		}
	}
	return stored
}

func Clear(ctx context.Context, store AppointmentStore) (int64, error) {
	return store.DeleteAll(ctx)
}

func StaffImageURL(u *models.User) string {
	return fmt.Sprintf("/uploads/staff/%s-%s.jpg", strings.ToLower(u.FirstName), strings.ToLower(u.LastName))
}

// SetStaffImages points every staff member at their conventional picture
// path. It returns how many were updated.
func SetStaffImages(ctx context.Context, users UserStore, log *slog.Logger) (int, error) {
	staff, err := users.ListByRole(ctx, user.RoleStaff)
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range staff {
		u := &staff[i]
		u.ImageURL = StaffImageURL(u)
		if err := users.Update(ctx, u); err != nil {
			log.Warn("failed to update staff image", "staff_id", u.ID, "error", err)
			continue
		}
		log.Info("updated staff image", "staff", u.FullName(), "image_url", u.ImageURL)
		updated++
	}
	return updated, nil
}
