package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/loyalty"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/query"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/directory"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/loyalty"
)

// ======================================================
// Public catalog
// ======================================================

func TestPublicServicesListsOnlyActive(t *testing.T) {
	active := models.Service{ID: uuid.New(), Name: "Pedicure", IsActive: true}
	retired := models.Service{ID: uuid.New(), Name: "Old Polish", IsActive: false}
	services := directory.NewServices(&memCatalog{services: []models.Service{active, retired}}, nopRecorder{})
	h := NewPublicHandler(services, directory.NewUsers(newMemUsers(), auth.NewBcryptHasher(bcrypt.MinCost), nopRecorder{}))

	r := gin.New()
	r.GET("/api/services", h.ListServices)
	r.GET("/api/services/:id", h.GetService)

	w := do(r, http.MethodGet, "/api/services", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pedicure")
	assert.NotContains(t, w.Body.String(), "Old Polish")

	w = do(r, http.MethodGet, "/api/services/"+retired.ID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/services/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/api/services/garbage", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublicStaff(t *testing.T) {
	svc := models.Service{ID: uuid.New(), Name: "Acrylic Full Set"}
	staff := models.User{ID: uuid.New(), FirstName: "Ana", Role: "staff", Services: []models.Service{svc}}
	customer := models.User{ID: uuid.New(), FirstName: "Bia", Role: "customer"}

	users := directory.NewUsers(newMemUsers(staff, customer), auth.NewBcryptHasher(bcrypt.MinCost), nopRecorder{})
	h := NewPublicHandler(directory.NewServices(&memCatalog{}, nopRecorder{}), users)

	r := gin.New()
	r.GET("/api/staff", h.ListStaff)
	r.GET("/api/staff/:id", h.GetStaff)
	r.GET("/api/staff/:id/services", h.StaffServices)

	w := do(r, http.MethodGet, "/api/staff", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ana")
	assert.NotContains(t, w.Body.String(), "Bia")

	w = do(r, http.MethodGet, "/api/staff/"+customer.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/api/staff/"+staff.ID.String()+"/services", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Acrylic Full Set")
}

// ======================================================
// Admin people
// ======================================================

func TestAdminCustomerCRUD(t *testing.T) {
	admin := auth.Principal{UserID: uuid.New(), Role: user.RoleAdmin}
	users := newMemUsers()
	h := NewCustomersHandler(directory.NewUsers(users, auth.NewBcryptHasher(bcrypt.MinCost), nopRecorder{}), "customers")

	r := gin.New()
	g := r.Group("/api/customers", as(admin))
	g.GET("", h.List)
	g.POST("", h.Create)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)

	first, last, email, pw := "Carla", "Souza", "carla@example.com", "secret1"
	w := do(r, http.MethodPost, "/api/customers", UserRequest{FirstName: &first, LastName: &last, Email: &email, Password: &pw})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode(w)["_id"].(string)

	w = do(r, http.MethodPost, "/api/customers", UserRequest{FirstName: &first, LastName: &last, Email: &email})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/api/customers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(w)
	assert.Len(t, body["customers"], 1)
	assert.Equal(t, "Carla Souza", body["customers"].([]any)[0].(map[string]any)["name"])

	phone := "555-0199"
	w = do(r, http.MethodPatch, "/api/customers/"+id, UserRequest{Phone: &phone})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, phone, decode(w)["phone"])

	bad := "sleeping"
	w = do(r, http.MethodPatch, "/api/customers/"+id, UserRequest{Status: &bad})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodDelete, "/api/customers/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Customer deleted successfully", decode(w)["message"])
}

// ======================================================
// Loyalty
// ======================================================

type memLedger struct {
	balance int
}

func (m *memLedger) Balance(context.Context, uuid.UUID) (int, error) { return m.balance, nil }

func (m *memLedger) History(context.Context, uuid.UUID) ([]models.PointsTransaction, error) {
	return nil, nil
}

func (m *memLedger) Award(context.Context, *models.PointsTransaction) (bool, error) { return true, nil }

func (m *memLedger) Redeem(_ context.Context, _ uuid.UUID, reward domain.Reward) (int, error) {
	if m.balance < reward.PointsCost {
		return m.balance, domain.ErrInsufficientPoints
	}
	m.balance -= reward.PointsCost
	return m.balance, nil
}

func TestLoyaltyEndpoints(t *testing.T) {
	ledger := &memLedger{balance: 150}
	h := NewLoyaltyHandler(loyalty.NewGetPoints(ledger), loyalty.NewRedeemReward(ledger, nopRecorder{}, nopCounter{}))

	r := gin.New()
	g := r.Group("/api/customer", as(auth.Principal{UserID: uuid.New(), Role: user.RoleCustomer}))
	g.GET("/points", h.Points)
	g.GET("/points/history", h.History)
	g.GET("/rewards", h.Rewards)
	g.POST("/rewards/:id/redeem", h.Redeem)

	w := do(r, http.MethodGet, "/api/customer/points", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 150, decode(w)["points"])

	w = do(r, http.MethodGet, "/api/customer/points/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	w = do(r, http.MethodGet, "/api/customer/rewards", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Free Pedicure")

	w = do(r, http.MethodPost, "/api/customer/rewards/2/redeem", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/customer/rewards/1/redeem", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 50, decode(w)["points"])

	w = do(r, http.MethodPost, "/api/customer/rewards/x/redeem", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ======================================================
// Audit logs
// ======================================================

type captureAudit struct {
	filter audit.Filter
	page   query.Page
}

func (c *captureAudit) List(_ context.Context, f audit.Filter, p query.Page) ([]models.AuditLog, int64, error) {
	c.filter, c.page = f, p
	return nil, 0, nil
}

func TestAuditLogsFilters(t *testing.T) {
	logs := &captureAudit{}
	h := NewAuditLogsHandler(logs, time.UTC)

	r := gin.New()
	r.GET("/api/admin/audit-logs", h.List)

	w := do(r, http.MethodGet, "/api/admin/audit-logs?action=user_deleted&from=2024-03-01&to=bad&limit=500", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "user_deleted", logs.filter.Action)
	require.NotNil(t, logs.filter.From)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *logs.filter.From)
	assert.Nil(t, logs.filter.To)
	assert.Equal(t, auditPageLimit, logs.page.Limit)

	body := decode(w)
	assert.Equal(t, []any{}, body["logs"])
	assert.Contains(t, body, "pagination")
}

// ======================================================
// Time parsing
// ======================================================

func TestParseTimestamp(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)

	got, err := parseTimestamp(loc, "2024-03-01T09:00:00")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)))

	got, err = parseTimestamp(loc, "2024-03-01T09:00")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)))

	got, err = parseTimestamp(loc, "2024-03-01T09:00:00Z")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)))

	_, err = parseTimestamp(loc, "March 1st")
	assert.Error(t, err)

	end, err := endOfDay(time.UTC, "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 23, 59, 59, 999999999, time.UTC), end)
}
