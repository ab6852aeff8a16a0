package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/query"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ======================================================
// Customer-facing listing
// ======================================================

type ListInput struct {
	Actor      auth.Principal
	CustomerID *uuid.UUID
	StaffID    *uuid.UUID

	// The range applies only when both ends are given.
	StartDate *time.Time
	EndDate   *time.Time
}

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	in ListInput,
) ([]models.Appointment, error) {

	b := domain.NewFilter()

	switch {
	case !in.Actor.IsStaff():
		b.ByCustomer(in.Actor.UserID)
	case in.CustomerID != nil:
		b.ByCustomer(*in.CustomerID)
	}
	if in.StaffID != nil {
		b.ByStaff(*in.StaffID)
	}
	if in.StartDate != nil && in.EndDate != nil {
		b.ByDateRange(*in.StartDate, *in.EndDate)
	}

	return uc.repo.List(ctx, b.Build())
}

// ======================================================
// Back-office listing
// ======================================================

type AdminListInput struct {
	Page          query.Page
	Search        string
	SortField     string
	SortDirection string
	Month         string
	StaffID       *uuid.UUID
	Status        string
}

type AdminListAppointments struct {
	repo domain.Repository
	now  timezone.Clock
}

func NewAdminListAppointments(repo domain.Repository, now timezone.Clock) *AdminListAppointments {
	return &AdminListAppointments{repo: repo, now: now}
}

func (uc *AdminListAppointments) Execute(
	ctx context.Context,
	in AdminListInput,
) ([]models.Appointment, int64, error) {

	b := domain.NewFilter().ByText(in.Search)

	// an unparsable month disables the month constraint
	if month, err := domain.ParseMonth(in.Month, uc.now()); err == nil {
		b.InMonth(month)
	}
	if in.StaffID != nil {
		b.ByStaff(*in.StaffID)
	}
	if s := strings.TrimSpace(in.Status); s != "" {
		status, err := domain.ParseStatus(s)
		if err != nil {
			return nil, 0, err
		}
		b.ByStatus(status)
	}

	return uc.repo.ListPage(ctx, domain.ListQuery{
		Filter: b.Build(),
		Sort:   domain.ParseSortField(in.SortField),
		Desc:   query.ParseDirection(in.SortDirection, true),
		Page:   in.Page,
	})
}
