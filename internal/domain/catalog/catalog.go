package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/query"
)

const MinDuration = 15

var Categories = []string{
	"Eyelash Extensions",
	"Acrylic",
	"Facials",
	"Waxing",
	"Pedicure",
	"Manicure",
	"Liquid Gel (Hard Gel - UV Gel)",
	"Kids Service",
	"Other",
}

var (
	ErrNotFound        = httperr.ErrNotFound("service_not_found", "Service not found")
	ErrInvalidCategory = httperr.ErrValidation("invalid_category", "Unknown service category")
	ErrInvalidDuration = httperr.ErrValidation("invalid_duration", "Duration must be at least 15 minutes")
	ErrInvalidPrice    = httperr.ErrValidation("invalid_price", "Price must not be negative")
	ErrNameRequired    = httperr.ErrValidation("name_required", "Service name is required")
)

func IsCategory(c string) bool {
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}

// Validate checks the invariants every stored service must hold.
func Validate(s *models.Service) error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrNameRequired
	}
	if s.Duration < MinDuration {
		return ErrInvalidDuration
	}
	if s.Price < 0 {
		return ErrInvalidPrice
	}
	if !IsCategory(s.Category) {
		return ErrInvalidCategory
	}
	return nil
}

type ListQuery struct {
	Category   string
	ActiveOnly bool
	Page       query.Page
}

type Repository interface {
	Create(ctx context.Context, s *models.Service) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Service, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Service, error)
	Update(ctx context.Context, s *models.Service) error
	Delete(ctx context.Context, id uuid.UUID) error

	ListActive(ctx context.Context) ([]models.Service, error)
	ListPage(ctx context.Context, q ListQuery) ([]models.Service, int64, error)
}
