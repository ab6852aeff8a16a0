package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ServiceGormRepository struct {
	db *gorm.DB
}

func NewServiceGormRepository(db *gorm.DB) *ServiceGormRepository {
	return &ServiceGormRepository{db: db}
}

func (r *ServiceGormRepository) Create(ctx context.Context, s *models.Service) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(s).Error, "create service")
}

func (r *ServiceGormRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	var s models.Service
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, notFoundAs(err, catalog.ErrNotFound, "find service")
	}
	return &s, nil
}

func (r *ServiceGormRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Service, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []models.Service
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, errors.Wrap(err, "find services")
	}
	return out, nil
}

func (r *ServiceGormRepository) Update(ctx context.Context, s *models.Service) error {
	return errors.Wrap(r.db.WithContext(ctx).Save(s).Error, "update service")
}

func (r *ServiceGormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM staff_services WHERE service_id = ?", id).Error; err != nil {
			return errors.Wrap(err, "unlink service from staff")
		}

		res := tx.Delete(&models.Service{}, "id = ?", id)
		if res.Error != nil {
			return errors.Wrap(res.Error, "delete service")
		}
		if res.RowsAffected == 0 {
			return catalog.ErrNotFound
		}
		return nil
	})
}

func (r *ServiceGormRepository) ListActive(ctx context.Context) ([]models.Service, error) {
	var out []models.Service
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("category ASC, name ASC").
		Find(&out).Error
	if err != nil {
		return nil, errors.Wrap(err, "list services")
	}
	return out, nil
}

func (r *ServiceGormRepository) ListPage(
	ctx context.Context,
	q catalog.ListQuery,
) ([]models.Service, int64, error) {

	scope := func(db *gorm.DB) *gorm.DB {
		if q.Category != "" {
			db = db.Where("category = ?", q.Category)
		}
		if q.ActiveOnly {
			db = db.Where("is_active = ?", true)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Scopes(scope).
		Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count services")
	}

	var out []models.Service
	if err := r.db.WithContext(ctx).
		Scopes(scope).
		Order("created_at DESC").
		Order("id").
		Offset(q.Page.Offset()).
		Limit(q.Page.Limit).
		Find(&out).Error; err != nil {
		return nil, 0, errors.Wrap(err, "list services")
	}
	return out, total, nil
}

var _ catalog.Repository = (*ServiceGormRepository)(nil)
