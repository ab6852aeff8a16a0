package directory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/query"
)

type ServiceInput struct {
	Name        *string
	Description *string
	Duration    *int
	Price       *float64
	Category    *string
	ImageURL    *string
	IsActive    *bool
}

// Services manages the salon's catalog.
type Services struct {
	repo  catalog.Repository
	audit audit.Recorder
}

func NewServices(repo catalog.Repository, recorder audit.Recorder) *Services {
	return &Services{repo: repo, audit: recorder}
}

// Active is the public catalog.
func (s *Services) Active(ctx context.Context) ([]models.Service, error) {
	return s.repo.ListActive(ctx)
}

func (s *Services) Get(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Services) List(ctx context.Context, category string, page query.Page) ([]models.Service, int64, error) {
	category = strings.TrimSpace(category)
	if category != "" && !catalog.IsCategory(category) {
		return nil, 0, catalog.ErrInvalidCategory
	}
	return s.repo.ListPage(ctx, catalog.ListQuery{Category: category, Page: page})
}

func (s *Services) Create(ctx context.Context, in ServiceInput) (*models.Service, error) {
	svc := &models.Service{IsActive: true}
	apply(svc, in)

	if err := catalog.Validate(svc); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Services) Update(ctx context.Context, id uuid.UUID, in ServiceInput) (*models.Service, error) {
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(svc, in)

	if err := catalog.Validate(svc); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Services) SetImage(ctx context.Context, id uuid.UUID, url string) (*models.Service, error) {
	return s.Update(ctx, id, ServiceInput{ImageURL: &url})
}

func (s *Services) Delete(ctx context.Context, actor auth.Principal, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, audit.Event{
		ActorID:  &actor.UserID,
		Action:   "service_deleted",
		Entity:   "service",
		EntityID: id.String(),
	})
	return nil
}

func apply(svc *models.Service, in ServiceInput) {
	if in.Name != nil {
		svc.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		svc.Description = strings.TrimSpace(*in.Description)
	}
	if in.Duration != nil {
		svc.Duration = *in.Duration
	}
	if in.Price != nil {
		svc.Price = *in.Price
	}
	if in.Category != nil {
		svc.Category = strings.TrimSpace(*in.Category)
	}
	if in.ImageURL != nil {
		svc.ImageURL = *in.ImageURL
	}
	if in.IsActive != nil {
		svc.IsActive = *in.IsActive
	}
}
