package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/query"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ======================================================
// Test doubles
// ======================================================

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) FindService(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	args := m.Called(ctx, id)
	svc, _ := args.Get(0).(*models.Service)
	return svc, args.Error(1)
}

func (m *mockRepo) Create(ctx context.Context, ap *models.Appointment) error {
	args := m.Called(ctx, ap)
	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockRepo) HasTimeConflict(ctx context.Context, staffID uuid.UUID, start, end time.Time, exclude uuid.UUID) (bool, error) {
	args := m.Called(ctx, staffID, start, end, exclude)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	ap, _ := args.Get(0).(*models.Appointment)
	return ap, args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, ap *models.Appointment) error {
	return m.Called(ctx, ap).Error(0)
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) List(ctx context.Context, f domain.ListFilter) ([]models.Appointment, error) {
	args := m.Called(ctx, f)
	apps, _ := args.Get(0).([]models.Appointment)
	return apps, args.Error(1)
}

func (m *mockRepo) ListPage(ctx context.Context, q domain.ListQuery) ([]models.Appointment, int64, error) {
	args := m.Called(ctx, q)
	apps, _ := args.Get(0).([]models.Appointment)
	return apps, args.Get(1).(int64), args.Error(2)
}

func (m *mockRepo) ListForStats(ctx context.Context) ([]models.Appointment, error) {
	args := m.Called(ctx)
	apps, _ := args.Get(0).([]models.Appointment)
	return apps, args.Error(1)
}

type mockAwarder struct {
	mock.Mock
}

func (m *mockAwarder) AwardForAppointment(ctx context.Context, ap *models.Appointment) error {
	return m.Called(ctx, ap).Error(0)
}

type countingCounter struct{ n int }

func (c *countingCounter) Inc() { c.n++ }

type recorder struct{ events []audit.Event }

func (r *recorder) Record(_ context.Context, ev audit.Event) { r.events = append(r.events, ev) }

type fixedCustomers int64

func (f fixedCustomers) CountByRole(context.Context, user.Role) (int64, error) {
	return int64(f), nil
}

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02T15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

var (
	ctx      = context.Background()
	admin    = auth.Principal{UserID: uuid.New(), Role: user.RoleAdmin}
	customer = auth.Principal{UserID: uuid.New(), Role: user.RoleCustomer}
)

func newBook(repo *mockRepo, enforce bool) (*BookAppointment, *countingCounter, *recorder, *mockAwarder) {
	c := &countingCounter{}
	r := &recorder{}
	a := &mockAwarder{}
	return NewBookAppointment(repo, r, a, c, logger.Discard(), enforce), c, r, a
}

// ======================================================
// Booking
// ======================================================

func TestBookDerivesEndTimeAndStartsPending(t *testing.T) {
	repo := &mockRepo{}
	svc := &models.Service{ID: uuid.New(), Duration: 45, Price: 30}
	staff := uuid.New()

	repo.On("FindService", ctx, svc.ID).Return(svc, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*models.Appointment")).Return(nil)

	uc, booked, rec, _ := newBook(repo, false)

	ap, err := uc.Execute(ctx, BookInput{
		Actor:     customer,
		StaffID:   staff,
		ServiceID: svc.ID,
		StartTime: at("2024-03-01T09:00"),
		Notes:     "<i>window seat</i>",
	})
	require.NoError(t, err)

	assert.Equal(t, at("2024-03-01T09:00"), ap.StartTime)
	assert.Equal(t, at("2024-03-01T09:45"), ap.EndTime)
	assert.Equal(t, "pending", ap.Status)
	assert.Equal(t, customer.UserID, ap.CustomerID)
	assert.Equal(t, "window seat", ap.Notes)
	assert.Equal(t, 1, booked.n)
	require.Len(t, rec.events, 1)
	assert.Equal(t, "appointment_created", rec.events[0].Action)

	repo.AssertNotCalled(t, "HasTimeConflict", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBookSameWindowTwiceSucceedsWithoutOverlapGuard(t *testing.T) {
	repo := &mockRepo{}
	svc := &models.Service{ID: uuid.New(), Duration: 60}
	staff := uuid.New()

	repo.On("FindService", ctx, svc.ID).Return(svc, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*models.Appointment")).Return(nil).Twice()

	uc, booked, _, _ := newBook(repo, false)
	in := BookInput{Actor: customer, StaffID: staff, ServiceID: svc.ID, StartTime: at("2024-03-04T10:00")}

	first, err := uc.Execute(ctx, in)
	require.NoError(t, err)
	second, err := uc.Execute(ctx, in)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.StartTime, second.StartTime)
	assert.Equal(t, first.EndTime, second.EndTime)
	assert.Equal(t, 2, booked.n)
	repo.AssertExpectations(t)
}

func TestBookRejectsOverlapWhenGuardEnabled(t *testing.T) {
	repo := &mockRepo{}
	svc := &models.Service{ID: uuid.New(), Duration: 60}
	staff := uuid.New()

	repo.On("FindService", ctx, svc.ID).Return(svc, nil)
	repo.On("HasTimeConflict", ctx, staff, at("2024-03-04T10:00"), at("2024-03-04T11:00"), uuid.Nil).
		Return(true, nil)

	uc, booked, _, _ := newBook(repo, true)

	_, err := uc.Execute(ctx, BookInput{Actor: customer, StaffID: staff, ServiceID: svc.ID, StartTime: at("2024-03-04T10:00")})
	assert.ErrorIs(t, err, domain.ErrTimeConflict)
	assert.Zero(t, booked.n)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookAllowsUnknownCustomerAndStaff(t *testing.T) {
	repo := &mockRepo{}
	svc := &models.Service{ID: uuid.New(), Duration: 30}
	ghostCustomer, ghostStaff := uuid.New(), uuid.New()

	repo.On("FindService", ctx, svc.ID).Return(svc, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*models.Appointment")).Return(nil)

	uc, _, _, _ := newBook(repo, false)

	ap, err := uc.Execute(ctx, BookInput{
		Actor:      admin,
		CustomerID: ghostCustomer,
		StaffID:    ghostStaff,
		ServiceID:  svc.ID,
		StartTime:  at("2024-03-04T10:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, ghostCustomer, ap.CustomerID)
	assert.Equal(t, ghostStaff, ap.StaffID)
}

func TestBookUnknownServiceIsNotFound(t *testing.T) {
	repo := &mockRepo{}
	id := uuid.New()
	repo.On("FindService", ctx, id).Return(nil, domain.ErrServiceNotFound)

	uc, _, _, _ := newBook(repo, false)

	_, err := uc.Execute(ctx, BookInput{Actor: customer, StaffID: uuid.New(), ServiceID: id, StartTime: at("2024-03-04T10:00")})
	require.Error(t, err)
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))
}

func TestBookRequiresFields(t *testing.T) {
	uc, _, _, _ := newBook(&mockRepo{}, false)

	_, err := uc.Execute(ctx, BookInput{Actor: customer, ServiceID: uuid.New(), StartTime: at("2024-03-04T10:00")})
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))

	_, err = uc.Execute(ctx, BookInput{Actor: admin, StaffID: uuid.New(), ServiceID: uuid.New(), StartTime: at("2024-03-04T10:00")})
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err), "staff must name the customer")
}

func TestAdminBookingWithExplicitEndAndCompletedStatusAwardsPoints(t *testing.T) {
	repo := &mockRepo{}
	svc := &models.Service{ID: uuid.New(), Duration: 30, Price: 55}
	end := at("2024-03-04T11:30")

	repo.On("FindService", ctx, svc.ID).Return(svc, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*models.Appointment")).Return(nil)

	uc, _, _, awarder := newBook(repo, false)
	awarder.On("AwardForAppointment", ctx, mock.AnythingOfType("*models.Appointment")).Return(nil).Once()

	ap, err := uc.Execute(ctx, BookInput{
		Actor:      admin,
		CustomerID: uuid.New(),
		StaffID:    uuid.New(),
		ServiceID:  svc.ID,
		StartTime:  at("2024-03-04T10:00"),
		EndTime:    &end,
		Status:     "completed",
	})
	require.NoError(t, err)
	assert.Equal(t, end, ap.EndTime)
	assert.Equal(t, "completed", ap.Status)
	awarder.AssertExpectations(t)
}

func TestCustomerCannotPickEndOrStatus(t *testing.T) {
	repo := &mockRepo{}
	svc := &models.Service{ID: uuid.New(), Duration: 30}
	end := at("2024-03-04T18:00")

	repo.On("FindService", ctx, svc.ID).Return(svc, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*models.Appointment")).Return(nil)

	uc, _, _, _ := newBook(repo, false)

	ap, err := uc.Execute(ctx, BookInput{
		Actor: customer, StaffID: uuid.New(), ServiceID: svc.ID,
		StartTime: at("2024-03-04T10:00"), EndTime: &end, Status: "confirmed",
	})
	require.NoError(t, err)
	assert.Equal(t, at("2024-03-04T10:30"), ap.EndTime)
	assert.Equal(t, "pending", ap.Status)
}

func TestAdminBookingRejectsInvertedWindow(t *testing.T) {
	repo := &mockRepo{}
	svc := &models.Service{ID: uuid.New(), Duration: 30}
	end := at("2024-03-04T09:00")
	repo.On("FindService", ctx, svc.ID).Return(svc, nil)

	uc, _, _, _ := newBook(repo, false)

	_, err := uc.Execute(ctx, BookInput{
		Actor: admin, CustomerID: uuid.New(), StaffID: uuid.New(), ServiceID: svc.ID,
		StartTime: at("2024-03-04T10:00"), EndTime: &end,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidWindow)
}

// ======================================================
// Updating
// ======================================================

func newUpdate(repo *mockRepo, strict bool) (*UpdateAppointment, *mockAwarder) {
	a := &mockAwarder{}
	return NewUpdateAppointment(repo, domain.PolicyFor(strict), &recorder{}, a, logger.Discard(), false), a
}

func stored(owner uuid.UUID, status domain.Status) *models.Appointment {
	return &models.Appointment{
		ID:         uuid.New(),
		CustomerID: owner,
		StaffID:    uuid.New(),
		ServiceID:  uuid.New(),
		StartTime:  at("2024-03-04T10:00"),
		EndTime:    at("2024-03-04T10:45"),
		Status:     string(status),
	}
}

func ptr[T any](v T) *T { return &v }

func TestCustomerCancelsOwnAppointment(t *testing.T) {
	repo := &mockRepo{}
	ap := stored(customer.UserID, domain.StatusPending)

	repo.On("FindByID", ctx, ap.ID).Return(ap, nil)
	repo.On("Update", ctx, ap).Return(nil)

	uc, awarder := newUpdate(repo, true)

	got, err := uc.Execute(ctx, UpdateInput{Actor: customer, ID: ap.ID, Status: ptr("cancelled"), Notes: ptr("running late")})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", got.Status)
	assert.Equal(t, "running late", got.Notes)
	awarder.AssertNotCalled(t, "AwardForAppointment", mock.Anything, mock.Anything)
}

func TestCustomerCannotConfirmOrTouchOthers(t *testing.T) {
	repo := &mockRepo{}
	mine := stored(customer.UserID, domain.StatusPending)
	theirs := stored(uuid.New(), domain.StatusPending)

	repo.On("FindByID", ctx, mine.ID).Return(mine, nil)
	repo.On("FindByID", ctx, theirs.ID).Return(theirs, nil)

	uc, _ := newUpdate(repo, true)

	_, err := uc.Execute(ctx, UpdateInput{Actor: customer, ID: mine.ID, Status: ptr("confirmed")})
	assert.Equal(t, httperr.KindForbidden, httperr.KindOf(err))

	_, err = uc.Execute(ctx, UpdateInput{Actor: customer, ID: theirs.ID, Notes: ptr("hi")})
	assert.Equal(t, httperr.KindForbidden, httperr.KindOf(err))

	start := at("2024-03-05T10:00")
	_, err = uc.Execute(ctx, UpdateInput{Actor: customer, ID: mine.ID, StartTime: &start})
	assert.Equal(t, httperr.KindForbidden, httperr.KindOf(err))

	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestStrictPolicyRejectsSkippingConfirmation(t *testing.T) {
	repo := &mockRepo{}
	ap := stored(uuid.New(), domain.StatusPending)
	repo.On("FindByID", ctx, ap.ID).Return(ap, nil)

	uc, _ := newUpdate(repo, true)

	_, err := uc.Execute(ctx, UpdateInput{Actor: admin, ID: ap.ID, Status: ptr("completed")})
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))
}

func TestPermissivePolicyOverwritesAnyStatus(t *testing.T) {
	repo := &mockRepo{}
	ap := stored(uuid.New(), domain.StatusCancelled)
	repo.On("FindByID", ctx, ap.ID).Return(ap, nil)
	repo.On("Update", ctx, ap).Return(nil)

	uc, _ := newUpdate(repo, false)

	got, err := uc.Execute(ctx, UpdateInput{Actor: admin, ID: ap.ID, Status: ptr("pending")})
	require.NoError(t, err)
	assert.Equal(t, "pending", got.Status)
}

func TestCompletingAwardsPoints(t *testing.T) {
	repo := &mockRepo{}
	ap := stored(uuid.New(), domain.StatusConfirmed)
	repo.On("FindByID", ctx, ap.ID).Return(ap, nil)
	repo.On("Update", ctx, ap).Return(nil)

	uc, awarder := newUpdate(repo, true)
	awarder.On("AwardForAppointment", ctx, ap).Return(nil).Once()

	got, err := uc.Execute(ctx, UpdateInput{Actor: admin, ID: ap.ID, Status: ptr("completed")})
	require.NoError(t, err)
	assert.Equal(t, "completed", got.Status)
	awarder.AssertExpectations(t)
}

func TestRescheduleDerivesEndFromService(t *testing.T) {
	repo := &mockRepo{}
	ap := stored(uuid.New(), domain.StatusPending)
	svc := &models.Service{ID: uuid.New(), Duration: 90}
	start := at("2024-03-06T14:00")

	repo.On("FindByID", ctx, ap.ID).Return(ap, nil)
	repo.On("FindService", ctx, svc.ID).Return(svc, nil)
	repo.On("Update", ctx, ap).Return(nil)

	uc, _ := newUpdate(repo, true)

	got, err := uc.Execute(ctx, UpdateInput{Actor: admin, ID: ap.ID, ServiceID: &svc.ID, StartTime: &start})
	require.NoError(t, err)
	assert.Equal(t, svc.ID, got.ServiceID)
	assert.Equal(t, start, got.StartTime)
	assert.Equal(t, at("2024-03-06T15:30"), got.EndTime)
}

func TestUpdateMissingAppointment(t *testing.T) {
	repo := &mockRepo{}
	id := uuid.New()
	repo.On("FindByID", ctx, id).Return(nil, domain.ErrAppointmentNotFound)

	uc, _ := newUpdate(repo, true)

	_, err := uc.Execute(ctx, UpdateInput{Actor: admin, ID: id, Status: ptr("confirmed")})
	assert.ErrorIs(t, err, domain.ErrAppointmentNotFound)
}

// ======================================================
// Deleting
// ======================================================

func TestDeleteChecksOwnership(t *testing.T) {
	repo := &mockRepo{}
	mine := stored(customer.UserID, domain.StatusPending)
	theirs := stored(uuid.New(), domain.StatusPending)

	repo.On("FindByID", ctx, mine.ID).Return(mine, nil)
	repo.On("FindByID", ctx, theirs.ID).Return(theirs, nil)
	repo.On("Delete", ctx, mine.ID).Return(nil)

	rec := &recorder{}
	uc := NewDeleteAppointment(repo, rec)

	require.NoError(t, uc.Execute(ctx, customer, mine.ID))
	assert.Equal(t, httperr.KindForbidden, httperr.KindOf(uc.Execute(ctx, customer, theirs.ID)))
	require.Len(t, rec.events, 1)
	assert.Equal(t, "appointment_deleted", rec.events[0].Action)
}

// ======================================================
// Listing
// ======================================================

func TestCustomerListingIsScopedToSelf(t *testing.T) {
	repo := &mockRepo{}
	other := uuid.New()

	repo.On("List", ctx, mock.MatchedBy(func(f domain.ListFilter) bool {
		return f.CustomerID != nil && *f.CustomerID == customer.UserID
	})).Return([]models.Appointment{}, nil)

	_, err := NewListAppointments(repo).Execute(ctx, ListInput{Actor: customer, CustomerID: &other})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestListingDateRangeNeedsBothEnds(t *testing.T) {
	repo := &mockRepo{}
	from := at("2024-03-01T00:00")
	to := at("2024-03-31T23:59")

	repo.On("List", ctx, mock.MatchedBy(func(f domain.ListFilter) bool {
		return f.StartFrom == nil && f.StartThrough == nil
	})).Return([]models.Appointment{}, nil).Once()
	repo.On("List", ctx, mock.MatchedBy(func(f domain.ListFilter) bool {
		return f.StartFrom != nil && f.StartFrom.Equal(from) && f.StartThrough.Equal(to)
	})).Return([]models.Appointment{}, nil).Once()

	uc := NewListAppointments(repo)

	_, err := uc.Execute(ctx, ListInput{Actor: admin, StartDate: &from})
	require.NoError(t, err)
	_, err = uc.Execute(ctx, ListInput{Actor: admin, StartDate: &from, EndDate: &to})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestAdminListDefaultsToCurrentMonthNewestFirst(t *testing.T) {
	repo := &mockRepo{}
	now := at("2024-07-19T16:20")

	repo.On("ListPage", ctx, mock.MatchedBy(func(q domain.ListQuery) bool {
		return q.Sort == domain.SortStartTime && q.Desc &&
			q.Filter.StartFrom.Equal(at("2024-07-01T00:00")) &&
			q.Filter.StartBefore.Equal(at("2024-08-01T00:00")) &&
			q.Page == query.Page{Number: 2, Limit: 10}
	})).Return([]models.Appointment{}, int64(0), nil)

	uc := NewAdminListAppointments(repo, timezone.Fixed(now))
	_, _, err := uc.Execute(ctx, AdminListInput{Page: query.Page{Number: 2, Limit: 10}})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestAdminListSortsByLinkedName(t *testing.T) {
	repo := &mockRepo{}
	staff := uuid.New()

	repo.On("ListPage", ctx, mock.MatchedBy(func(q domain.ListQuery) bool {
		return q.Sort == domain.SortCustomer && !q.Desc &&
			*q.Filter.Status == domain.StatusConfirmed &&
			*q.Filter.StaffID == staff &&
			q.Filter.Text == "anna"
	})).Return([]models.Appointment{{}}, int64(1), nil)

	uc := NewAdminListAppointments(repo, timezone.Fixed(at("2024-07-19T16:20")))
	apps, total, err := uc.Execute(ctx, AdminListInput{
		Page:          query.NewPage(1, 10, 10),
		Search:        "anna",
		SortField:     "customer",
		SortDirection: "asc",
		StaffID:       &staff,
		Status:        "confirmed",
	})
	require.NoError(t, err)
	assert.Len(t, apps, 1)
	assert.Equal(t, int64(1), total)
}

func TestAdminListRejectsUnknownStatus(t *testing.T) {
	uc := NewAdminListAppointments(&mockRepo{}, timezone.Fixed(time.Now()))
	_, _, err := uc.Execute(ctx, AdminListInput{Status: "archived"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

// ======================================================
// Dashboard
// ======================================================

func TestDashboard(t *testing.T) {
	repo := &mockRepo{}
	now := at("2024-04-15T12:00")

	repo.On("ListForStats", ctx).Return([]models.Appointment{
		{StartTime: at("2024-04-10T09:00"), EndTime: at("2024-04-10T09:30"), Service: &models.Service{Price: 20}},
		{StartTime: at("2024-04-11T09:00"), EndTime: at("2024-04-11T10:00")},
	}, nil)

	d, err := NewDashboardStats(repo, fixedCustomers(7), timezone.Fixed(now)).Execute(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, d.TotalAppointments)
	assert.Equal(t, int64(7), d.TotalCustomers)
	assert.Equal(t, 20.0, d.TotalRevenue)
	assert.Equal(t, 45, d.AverageAppointmentDuration)
	assert.Len(t, d.AppointmentsByDate, 2)
}

func TestGetHidesOtherCustomersAppointments(t *testing.T) {
	repo := &mockRepo{}
	mine := &models.Appointment{ID: uuid.New(), CustomerID: customer.UserID}
	theirs := &models.Appointment{ID: uuid.New(), CustomerID: uuid.New()}
	repo.On("FindByID", ctx, mine.ID).Return(mine, nil)
	repo.On("FindByID", ctx, theirs.ID).Return(theirs, nil)

	uc := NewGetAppointment(repo)

	got, err := uc.Execute(ctx, customer, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, mine.ID, got.ID)

	_, err = uc.Execute(ctx, customer, theirs.ID)
	assert.Equal(t, httperr.KindForbidden, httperr.KindOf(err))

	got, err = uc.Execute(ctx, admin, theirs.ID)
	require.NoError(t, err)
	assert.Equal(t, theirs.ID, got.ID)
}
