package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/query"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := validators.RegisterBindings(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// ======================================================
// HTTP helpers
// ======================================================

// as injects p the way AuthMiddleware would.
func as(p auth.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextPrincipal, p)
		c.Next()
	}
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			_ = json.NewEncoder(&buf).Encode(b)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return out
}

// window returns page p of items the way OFFSET/LIMIT would.
func window[T any](items []T, p query.Page) []T {
	start := min(p.Offset(), len(items))
	end := min(start+p.Limit, len(items))
	return items[start:end]
}

type nopRecorder struct{}

func (nopRecorder) Record(context.Context, audit.Event) {}

// ======================================================
// In-memory users
// ======================================================

type memUsers struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*models.User
}

func newMemUsers(users ...models.User) *memUsers {
	m := &memUsers{byID: map[uuid.UUID]*models.User{}}
	for i := range users {
		u := users[i]
		m.byID[u.ID] = &u
	}
	return m
}

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.byID {
		if strings.EqualFold(other.Email, u.Email) {
			return user.ErrEmailTaken
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrNotFound
}

func (m *memUsers) FindWithRole(ctx context.Context, id uuid.UUID, role user.Role) (*models.User, error) {
	u, err := m.FindByID(ctx, id)
	if err != nil || u.Role != string(role) {
		if role == user.RoleStaff {
			return nil, user.ErrStaffNotFound
		}
		return nil, user.ErrCustomerNotFound
	}
	return u, nil
}

func (m *memUsers) Update(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) ReplaceServices(context.Context, *models.User, []uuid.UUID) error { return nil }

func (m *memUsers) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

func (m *memUsers) ListByRole(_ context.Context, role user.Role) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.User
	for _, u := range m.byID {
		if u.Role == string(role) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *memUsers) ListPage(ctx context.Context, q user.ListQuery) ([]models.User, int64, error) {
	all, _ := m.ListByRole(ctx, q.Role)
	sort.Slice(all, func(i, j int) bool { return all[i].Email < all[j].Email })
	return window(all, q.Page), int64(len(all)), nil
}

func (m *memUsers) CountByRole(ctx context.Context, role user.Role) (int64, error) {
	all, _ := m.ListByRole(ctx, role)
	return int64(len(all)), nil
}

var _ user.Repository = (*memUsers)(nil)

// ======================================================
// In-memory catalog
// ======================================================

type memCatalog struct {
	services []models.Service
}

func (m *memCatalog) Create(_ context.Context, s *models.Service) error {
	s.ID = uuid.New()
	m.services = append(m.services, *s)
	return nil
}

func (m *memCatalog) FindByID(_ context.Context, id uuid.UUID) (*models.Service, error) {
	for i := range m.services {
		if m.services[i].ID == id {
			s := m.services[i]
			return &s, nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (m *memCatalog) FindByIDs(context.Context, []uuid.UUID) ([]models.Service, error) {
	return nil, nil
}

func (m *memCatalog) Update(_ context.Context, s *models.Service) error {
	for i := range m.services {
		if m.services[i].ID == s.ID {
			m.services[i] = *s
		}
	}
	return nil
}

func (m *memCatalog) Delete(context.Context, uuid.UUID) error { return nil }

func (m *memCatalog) ListActive(context.Context) ([]models.Service, error) {
	var out []models.Service
	for _, s := range m.services {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memCatalog) ListPage(_ context.Context, q catalog.ListQuery) ([]models.Service, int64, error) {
	return window(m.services, q.Page), int64(len(m.services)), nil
}

var _ catalog.Repository = (*memCatalog)(nil)

// ======================================================
// In-memory appointments
// ======================================================

type memAppointments struct {
	services map[uuid.UUID]*models.Service
	byID     map[uuid.UUID]*models.Appointment
}

func newMemAppointments(services ...models.Service) *memAppointments {
	m := &memAppointments{
		services: map[uuid.UUID]*models.Service{},
		byID:     map[uuid.UUID]*models.Appointment{},
	}
	for i := range services {
		s := services[i]
		m.services[s.ID] = &s
	}
	return m
}

func (m *memAppointments) FindService(_ context.Context, id uuid.UUID) (*models.Service, error) {
	s, ok := m.services[id]
	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	return s, nil
}

func (m *memAppointments) Create(_ context.Context, ap *models.Appointment) error {
	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	cp := *ap
	m.byID[ap.ID] = &cp
	return nil
}

func (m *memAppointments) HasTimeConflict(context.Context, uuid.UUID, time.Time, time.Time, uuid.UUID) (bool, error) {
	return false, nil
}

func (m *memAppointments) FindByID(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	ap, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	cp := *ap
	cp.Service = m.services[ap.ServiceID]
	return &cp, nil
}

func (m *memAppointments) Update(_ context.Context, ap *models.Appointment) error {
	cp := *ap
	m.byID[ap.ID] = &cp
	return nil
}

func (m *memAppointments) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrAppointmentNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memAppointments) List(_ context.Context, f domain.ListFilter) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range m.byID {
		if f.CustomerID != nil && ap.CustomerID != *f.CustomerID {
			continue
		}
		out = append(out, *ap)
	}
	return out, nil
}

func (m *memAppointments) ListPage(ctx context.Context, q domain.ListQuery) ([]models.Appointment, int64, error) {
	all, _ := m.List(ctx, q.Filter)
	sort.Slice(all, func(i, j int) bool { return all[i].StartTime.Before(all[j].StartTime) })
	return window(all, q.Page), int64(len(all)), nil
}

func (m *memAppointments) ListForStats(ctx context.Context) ([]models.Appointment, error) {
	return m.List(ctx, domain.ListFilter{})
}

var _ domain.Repository = (*memAppointments)(nil)
