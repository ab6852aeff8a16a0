package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type Dashboard struct {
	TotalAppointments          int               `json:"totalAppointments"`
	TotalCustomers             int64             `json:"totalCustomers"`
	TotalRevenue               float64           `json:"totalRevenue"`
	AverageAppointmentDuration int               `json:"averageAppointmentDuration"`
	AppointmentsByDate         []domain.DayCount `json:"appointmentsByDate"`
}

type DashboardStats struct {
	repo  domain.Repository
	users CustomerCounter
	now   timezone.Clock
}

func NewDashboardStats(repo domain.Repository, users CustomerCounter, now timezone.Clock) *DashboardStats {
	return &DashboardStats{repo: repo, users: users, now: now}
}

func (uc *DashboardStats) Execute(ctx context.Context) (*Dashboard, error) {
	apps, err := uc.repo.ListForStats(ctx)
	if err != nil {
		return nil, err
	}

	customers, err := uc.users.CountByRole(ctx, user.RoleCustomer)
	if err != nil {
		return nil, err
	}

	st := domain.ClassifyForReporting(apps, uc.now())

	return &Dashboard{
		TotalAppointments:          st.Count,
		TotalCustomers:             customers,
		TotalRevenue:               st.Revenue,
		AverageAppointmentDuration: st.AverageDuration,
		AppointmentsByDate:         st.ByDate,
	}, nil
}
