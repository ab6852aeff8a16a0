package user

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/query"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleStaff || r == RoleAdmin
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

const MinPasswordLength = 6

var (
	ErrNotFound         = httperr.ErrNotFound("user_not_found", "User not found")
	ErrStaffNotFound    = httperr.ErrNotFound("staff_not_found", "Staff member not found")
	ErrCustomerNotFound = httperr.ErrNotFound("customer_not_found", "Customer not found")
	ErrEmailTaken       = httperr.ErrConflict("email_taken", "User already exists")
	ErrWeakPassword     = httperr.ErrValidation("weak_password", "Password must be at least 6 characters")
)

// NormalizeEmail trims and lower-cases; email identity is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ListQuery drives the paginated user listings.
type ListQuery struct {
	Role   Role
	Search string
	Sort   query.Sort
	Page   query.Page
}

// SortColumn maps a public sort field onto a users column. "name" sorts by
// first then last name.
func SortColumn(field string) string {
	switch field {
	case "email":
		return "email"
	case "phone":
		return "phone"
	case "role":
		return "role"
	case "status":
		return "status"
	case "createdAt":
		return "created_at"
	case "firstName":
		return "first_name"
	case "lastName":
		return "last_name"
	default:
		return "name"
	}
}

type Repository interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindWithRole(ctx context.Context, id uuid.UUID, role Role) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
	ReplaceServices(ctx context.Context, u *models.User, serviceIDs []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error

	ListByRole(ctx context.Context, role Role) ([]models.User, error)
	ListPage(ctx context.Context, q ListQuery) ([]models.User, int64, error)
	CountByRole(ctx context.Context, role Role) (int64, error)
}
