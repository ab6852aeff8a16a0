package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) Create(ctx context.Context, u *models.User) error {
	u.Email = user.NormalizeEmail(u.Email)

	err := r.db.WithContext(ctx).Omit("Services.*").Create(u).Error
	if isUniqueViolation(err) {
		return user.ErrEmailTaken
	}
	return errors.Wrap(err, "create user")
}

func (r *UserGormRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Preload("Services").
		First(&u, "id = ?", id).Error; err != nil {
		return nil, notFoundAs(err, user.ErrNotFound, "find user")
	}
	return &u, nil
}

func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", user.NormalizeEmail(email)).
		First(&u).Error; err != nil {
		return nil, notFoundAs(err, user.ErrNotFound, "find user by email")
	}
	return &u, nil
}

func (r *UserGormRepository) FindWithRole(
	ctx context.Context,
	id uuid.UUID,
	role user.Role,
) (*models.User, error) {

	notFound := user.ErrNotFound
	switch role {
	case user.RoleStaff:
		notFound = user.ErrStaffNotFound
	case user.RoleCustomer:
		notFound = user.ErrCustomerNotFound
	}

	var u models.User
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Where("id = ? AND role = ?", id, string(role)).
		First(&u).Error; err != nil {
		return nil, notFoundAs(err, notFound, "find user")
	}
	return &u, nil
}

func (r *UserGormRepository) Update(ctx context.Context, u *models.User) error {
	u.Email = user.NormalizeEmail(u.Email)

	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(u).Error
	if isUniqueViolation(err) {
		return user.ErrEmailTaken
	}
	return errors.Wrap(err, "update user")
}

func (r *UserGormRepository) ReplaceServices(
	ctx context.Context,
	u *models.User,
	serviceIDs []uuid.UUID,
) error {

	assoc := r.db.WithContext(ctx).Model(u).Association("Services")
	if len(serviceIDs) == 0 {
		return errors.Wrap(assoc.Clear(), "clear staff services")
	}

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("id IN ?", serviceIDs).
		Find(&services).Error; err != nil {
		return errors.Wrap(err, "load staff services")
	}

	return errors.Wrap(assoc.Replace(services), "replace staff services")
}

func (r *UserGormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM staff_services WHERE user_id = ?", id).Error; err != nil {
			return errors.Wrap(err, "delete staff services")
		}

		res := tx.Delete(&models.User{}, "id = ?", id)
		if res.Error != nil {
			return errors.Wrap(res.Error, "delete user")
		}
		if res.RowsAffected == 0 {
			return user.ErrNotFound
		}
		return nil
	})
}

func (r *UserGormRepository) ListByRole(ctx context.Context, role user.Role) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Preload("Services").
		Where("role = ?", string(role)).
		Order("first_name ASC, last_name ASC").
		Find(&users).Error
	if err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	return users, nil
}

func userSearchScope(q user.ListQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q.Role != "" {
			db = db.Where("role = ?", string(q.Role))
		}
		if q.Search != "" {
			p := containsPattern(q.Search)
			db = db.Where(
				"(first_name ILIKE ? OR last_name ILIKE ? OR (first_name || ' ' || last_name) ILIKE ? OR email ILIKE ? OR phone ILIKE ?)",
				p, p, p, p, p,
			)
		}
		return db
	}
}

func (r *UserGormRepository) ListPage(
	ctx context.Context,
	q user.ListQuery,
) ([]models.User, int64, error) {

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Scopes(userSearchScope(q)).
		Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count users")
	}

	dir := q.Sort.Direction()
	col := user.SortColumn(q.Sort.Field)
	order := col + " " + dir
	if col == "name" {
		order = "first_name " + dir + ", last_name " + dir
	}

	db := r.db.WithContext(ctx).
		Scopes(userSearchScope(q)).
		Order(order).
		Order("id").
		Offset(q.Page.Offset()).
		Limit(q.Page.Limit)
	if q.Role == user.RoleStaff {
		db = db.Preload("Services")
	}

	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		return nil, 0, errors.Wrap(err, "list users")
	}
	return users, total, nil
}

func (r *UserGormRepository) CountByRole(ctx context.Context, role user.Role) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", string(role)).
		Count(&n).Error
	return n, errors.Wrap(err, "count users")
}

var _ user.Repository = (*UserGormRepository)(nil)
