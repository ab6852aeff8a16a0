package directory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/query"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

var (
	ErrInvalidWorkingHours = httperr.ErrValidation("invalid_working_hours", "Working hours must be HH:mm with start before end")
	ErrInvalidStatus       = httperr.ErrValidation("invalid_status", "Status must be active or inactive")
)

// UserInput carries the writable profile fields. Nil means "leave as is" on
// update; on create the required fields must be set.
type UserInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Password  *string
	Status    *string
	ImageURL  *string

	// Staff only.
	WorkingHours *models.WorkingHours
	ServiceIDs   *[]uuid.UUID
}

type ListUsersInput struct {
	Search        string
	SortField     string
	SortDirection string
	Page          query.Page
}

// Users manages customer and staff records on behalf of an admin.
type Users struct {
	repo   user.Repository
	hasher auth.PasswordHasher
	audit  audit.Recorder
}

func NewUsers(repo user.Repository, hasher auth.PasswordHasher, recorder audit.Recorder) *Users {
	return &Users{repo: repo, hasher: hasher, audit: recorder}
}

// ======================================================
// Reads
// ======================================================

func (s *Users) Get(ctx context.Context, role user.Role, id uuid.UUID) (*models.User, error) {
	return s.repo.FindWithRole(ctx, id, role)
}

func (s *Users) List(ctx context.Context, role user.Role, in ListUsersInput) ([]models.User, int64, error) {
	return s.repo.ListPage(ctx, user.ListQuery{
		Role:   role,
		Search: strings.TrimSpace(in.Search),
		Sort: query.Sort{
			Field: in.SortField,
			Desc:  query.ParseDirection(in.SortDirection, false),
		},
		Page: in.Page,
	})
}

// Staff lists every staff member with their services, by name.
func (s *Users) Staff(ctx context.Context) ([]models.User, error) {
	return s.repo.ListByRole(ctx, user.RoleStaff)
}

func (s *Users) StaffServices(ctx context.Context, id uuid.UUID) ([]models.Service, error) {
	u, err := s.repo.FindWithRole(ctx, id, user.RoleStaff)
	if err != nil {
		return nil, err
	}
	if u.Services == nil {
		return []models.Service{}, nil
	}
	return u.Services, nil
}

// ======================================================
// Writes
// ======================================================

func (s *Users) Create(ctx context.Context, role user.Role, in UserInput) (*models.User, error) {
	u := &models.User{Role: string(role), Status: string(user.StatusActive)}

	if in.FirstName == nil || strings.TrimSpace(*in.FirstName) == "" {
		return nil, httperr.ErrValidation("missing_field", "firstName is required")
	}
	if in.LastName == nil || strings.TrimSpace(*in.LastName) == "" {
		return nil, httperr.ErrValidation("missing_field", "lastName is required")
	}
	if in.Email == nil || strings.TrimSpace(*in.Email) == "" {
		return nil, httperr.ErrValidation("missing_field", "email is required")
	}

	if err := s.apply(u, in); err != nil {
		return nil, err
	}

	// without a password the account cannot log in until one is set
	password := uuid.NewString()
	if in.Password != nil && *in.Password != "" {
		password = *in.Password
	}
	if err := s.setPassword(u, password); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	if role == user.RoleStaff && in.ServiceIDs != nil {
		if err := s.repo.ReplaceServices(ctx, u, *in.ServiceIDs); err != nil {
			return nil, err
		}
	}

	return s.repo.FindWithRole(ctx, u.ID, role)
}

func (s *Users) Update(ctx context.Context, role user.Role, id uuid.UUID, in UserInput) (*models.User, error) {
	u, err := s.repo.FindWithRole(ctx, id, role)
	if err != nil {
		return nil, err
	}

	if err := s.apply(u, in); err != nil {
		return nil, err
	}
	if in.Password != nil && *in.Password != "" {
		if err := s.setPassword(u, *in.Password); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	if role == user.RoleStaff && in.ServiceIDs != nil {
		if err := s.repo.ReplaceServices(ctx, u, *in.ServiceIDs); err != nil {
			return nil, err
		}
	}

	return s.repo.FindWithRole(ctx, id, role)
}

// SetImage records the public URL of an uploaded picture.
func (s *Users) SetImage(ctx context.Context, role user.Role, id uuid.UUID, url string) (*models.User, error) {
	return s.Update(ctx, role, id, UserInput{ImageURL: &url})
}

func (s *Users) Delete(ctx context.Context, actor auth.Principal, role user.Role, id uuid.UUID) error {
	u, err := s.repo.FindWithRole(ctx, id, role)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, audit.Event{
		ActorID:  &actor.UserID,
		Action:   "user_deleted",
		Entity:   "user",
		EntityID: id.String(),
		Metadata: map[string]any{"role": u.Role, "email": u.Email},
	})
	return nil
}

// ======================================================
// helpers
// ======================================================

func (s *Users) apply(u *models.User, in UserInput) error {
	if in.FirstName != nil {
		u.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		u.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Email != nil {
		email := user.NormalizeEmail(*in.Email)
		if !validators.IsEmailSyntaxValid(email) {
			return httperr.ErrValidation("invalid_email", "Email address is not valid")
		}
		u.Email = email
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Status != nil {
		st := user.Status(strings.ToLower(strings.TrimSpace(*in.Status)))
		if !st.Valid() {
			return ErrInvalidStatus
		}
		u.Status = string(st)
	}
	if in.ImageURL != nil {
		u.ImageURL = *in.ImageURL
	}
	if in.WorkingHours != nil {
		if err := appointment.ValidateWorkingHours(*in.WorkingHours); err != nil {
			return ErrInvalidWorkingHours
		}
		u.WorkingHours = *in.WorkingHours
	}
	return nil
}

func (s *Users) setPassword(u *models.User, password string) error {
	if len(password) < user.MinPasswordLength {
		return user.ErrWeakPassword
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}
