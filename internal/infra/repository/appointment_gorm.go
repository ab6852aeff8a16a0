package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) FindService(
	ctx context.Context,
	id uuid.UUID,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, "id = ?", id).Error; err != nil {
		return nil, notFoundAs(err, domain.ErrServiceNotFound, "find service")
	}
	return &svc, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) Create(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return errors.Wrap(
		r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error,
		"create appointment",
	)
}

// CreateBatch inserts appointments in a single statement.
func (r *AppointmentGormRepository) CreateBatch(
	ctx context.Context,
	aps []models.Appointment,
) error {
	if len(aps) == 0 {
		return nil
	}
	return errors.Wrap(
		r.db.WithContext(ctx).Omit(clause.Associations).Create(&aps).Error,
		"create appointments",
	)
}

func (r *AppointmentGormRepository) HasTimeConflict(
	ctx context.Context,
	staffID uuid.UUID,
	start time.Time,
	end time.Time,
	exclude uuid.UUID,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"staff_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
			staffID,
			string(domain.StatusCancelled),
			end,
			start,
		)
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "check time conflict")
	}
	return count > 0, nil
}

func (r *AppointmentGormRepository) FindByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Staff").
		Preload("Service").
		First(&ap, "id = ?", id).Error; err != nil {
		return nil, notFoundAs(err, domain.ErrAppointmentNotFound, "find appointment")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) Update(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return errors.Wrap(
		r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error,
		"update appointment",
	)
}

func (r *AppointmentGormRepository) Delete(
	ctx context.Context,
	id uuid.UUID,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, "id = ?", id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete appointment")
	}
	if res.RowsAffected == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

func (r *AppointmentGormRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Appointment{})
	return res.RowsAffected, errors.Wrap(res.Error, "delete appointments")
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

const (
	customerNameExpr = "(cu.first_name || ' ' || cu.last_name)"
	staffNameExpr    = "(st.first_name || ' ' || st.last_name)"
)

// withLinked joins the referenced users and service so filters and sorting
// can use their display fields. LEFT joins keep dangling references.
func withLinked(db *gorm.DB) *gorm.DB {
	return db.
		Joins("LEFT JOIN users AS cu ON cu.id = appointments.customer_id").
		Joins("LEFT JOIN users AS st ON st.id = appointments.staff_id").
		Joins("LEFT JOIN services AS sv ON sv.id = appointments.service_id")
}

func filterScope(f domain.ListFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = withLinked(db)

		if f.CustomerID != nil {
			db = db.Where("appointments.customer_id = ?", *f.CustomerID)
		}
		if f.StaffID != nil {
			db = db.Where("appointments.staff_id = ?", *f.StaffID)
		}
		if f.Status != nil {
			db = db.Where("appointments.status = ?", string(*f.Status))
		}
		if f.StartFrom != nil {
			db = db.Where("appointments.start_time >= ?", *f.StartFrom)
		}
		if f.StartThrough != nil {
			db = db.Where("appointments.start_time <= ?", *f.StartThrough)
		}
		if f.StartBefore != nil {
			db = db.Where("appointments.start_time < ?", *f.StartBefore)
		}
		if f.Text != "" {
			p := containsPattern(f.Text)
			db = db.Where(
				"(cu.first_name ILIKE ? OR cu.last_name ILIKE ? OR cu.email ILIKE ? OR "+customerNameExpr+" ILIKE ? OR "+
					"sv.name ILIKE ? OR "+
					"st.first_name ILIKE ? OR st.last_name ILIKE ? OR "+staffNameExpr+" ILIKE ? OR "+
					"appointments.status ILIKE ?)",
				p, p, p, p, p, p, p, p, p,
			)
		}
		return db
	}
}

func sortExpr(field domain.SortField) string {
	switch field {
	case domain.SortCustomer:
		return customerNameExpr
	case domain.SortStaff:
		return staffNameExpr
	case domain.SortService:
		return "sv.name"
	case domain.SortEndTime:
		return "appointments.end_time"
	case domain.SortStatus:
		return "appointments.status"
	case domain.SortCreatedAt:
		return "appointments.created_at"
	default:
		return "appointments.start_time"
	}
}

func populated(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Customer").
		Preload("Staff").
		Preload("Service")
}

func (r *AppointmentGormRepository) List(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Scopes(filterScope(f), populated).
		Select("appointments.*").
		Order("appointments.start_time ASC").
		Find(&apps).Error
	if err != nil {
		return nil, errors.Wrap(err, "list appointments")
	}
	return apps, nil
}

// pageScope orders and windows a filtered listing. Ties on the sort key are
// broken by id so pages never overlap.
func pageScope(q domain.ListQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		dir := "ASC"
		if q.Desc {
			dir = "DESC"
		}
		return db.
			Scopes(filterScope(q.Filter)).
			Select("appointments.*").
			Order(sortExpr(q.Sort) + " " + dir + " NULLS LAST").
			Order("appointments.id").
			Offset(q.Page.Offset()).
			Limit(q.Page.Limit)
	}
}

func (r *AppointmentGormRepository) ListPage(
	ctx context.Context,
	q domain.ListQuery,
) ([]models.Appointment, int64, error) {

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Scopes(filterScope(q.Filter)).
		Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count appointments")
	}

	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Scopes(pageScope(q), populated).
		Find(&apps).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "list appointments")
	}

	return apps, total, nil
}

func (r *AppointmentGormRepository) ListForStats(
	ctx context.Context,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Select("id", "service_id", "start_time", "end_time").
		Preload("Service", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "price")
		}).
		Find(&apps).Error
	if err != nil {
		return nil, errors.Wrap(err, "list appointments for stats")
	}
	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
