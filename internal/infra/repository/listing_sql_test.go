package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/query"
)

// sqlDB renders statements without ever dialling postgres.
func sqlDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(
		postgres.New(postgres.Config{DSN: "host=127.0.0.1 port=1 user=salon dbname=salon sslmode=disable"}),
		&gorm.Config{DisableAutomaticPing: true},
	)
	require.NoError(t, err)
	return db
}

func pageSQL(db *gorm.DB, q domain.ListQuery) string {
	return db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return tx.Model(&models.Appointment{}).Scopes(pageScope(q)).Find(&[]models.Appointment{})
	})
}

func countSQL(db *gorm.DB, f domain.ListFilter) string {
	return db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var n int64
		return tx.Model(&models.Appointment{}).Scopes(filterScope(f)).Count(&n)
	})
}

func TestListingWithoutFilterHasNoWhere(t *testing.T) {
	db := sqlDB(t)

	sql := pageSQL(db, domain.ListQuery{Page: query.NewPage(1, 10, 10)})

	assert.Contains(t, sql, `SELECT appointments.* FROM "appointments"`)
	assert.Contains(t, sql, "LEFT JOIN users AS cu ON cu.id = appointments.customer_id")
	assert.Contains(t, sql, "LEFT JOIN users AS st ON st.id = appointments.staff_id")
	assert.Contains(t, sql, "LEFT JOIN services AS sv ON sv.id = appointments.service_id")
	assert.NotContains(t, sql, "WHERE")
	assert.Contains(t, sql, "ORDER BY appointments.start_time ASC NULLS LAST,appointments.id")
	assert.Contains(t, sql, "LIMIT 10")
}

func TestListingFilterPredicates(t *testing.T) {
	db := sqlDB(t)
	customer, staff := uuid.New(), uuid.New()

	f := domain.NewFilter().
		ByCustomer(customer).
		ByStaff(staff).
		ByStatus(domain.StatusConfirmed).
		ByDateRange(
			time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC),
		).
		Build()

	sql := countSQL(db, f)

	assert.Contains(t, sql, "count(*)")
	assert.Contains(t, sql, "appointments.customer_id = '"+customer.String()+"'")
	assert.Contains(t, sql, "appointments.staff_id = '"+staff.String()+"'")
	assert.Contains(t, sql, "appointments.status = 'confirmed'")
	assert.Contains(t, sql, "appointments.start_time >= '2024-03-01 00:00:00'")
	assert.Contains(t, sql, "appointments.start_time <= '2024-03-31 23:59:59'")
	assert.NotContains(t, sql, "appointments.start_time < '")
	assert.NotContains(t, sql, "ORDER BY")
	assert.NotContains(t, sql, "LIMIT")
}

func TestListingMonthIsHalfOpen(t *testing.T) {
	db := sqlDB(t)

	f := domain.NewFilter().InMonth(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)).Build()
	sql := countSQL(db, f)

	assert.Contains(t, sql, "appointments.start_time >= '2024-03-01 00:00:00'")
	assert.Contains(t, sql, "appointments.start_time < '2024-04-01 00:00:00'")
	assert.NotContains(t, sql, "appointments.start_time <=")
}

func TestListingTextSearchIsEscapedILike(t *testing.T) {
	db := sqlDB(t)

	sql := countSQL(db, domain.NewFilter().ByText("  anna ").Build())
	assert.Equal(t, 9, strings.Count(sql, "ILIKE '%anna%'"))
	assert.Contains(t, sql, "(cu.first_name || ' ' || cu.last_name) ILIKE")
	assert.Contains(t, sql, "(st.first_name || ' ' || st.last_name) ILIKE")
	assert.Contains(t, sql, "sv.name ILIKE")

	sql = countSQL(db, domain.NewFilter().ByText("50%").Build())
	assert.Contains(t, sql, `ILIKE '%50\%%'`)
}

func TestListingSortFields(t *testing.T) {
	db := sqlDB(t)

	for field, expr := range map[domain.SortField]string{
		domain.SortStartTime: "appointments.start_time",
		domain.SortEndTime:   "appointments.end_time",
		domain.SortStatus:    "appointments.status",
		domain.SortCreatedAt: "appointments.created_at",
		domain.SortCustomer:  "(cu.first_name || ' ' || cu.last_name)",
		domain.SortStaff:     "(st.first_name || ' ' || st.last_name)",
		domain.SortService:   "sv.name",
	} {
		sql := pageSQL(db, domain.ListQuery{Sort: field, Desc: true, Page: query.NewPage(1, 10, 10)})
		assert.Contains(t, sql, "ORDER BY "+expr+" DESC NULLS LAST,appointments.id", field)
	}
}

func TestListingPageWindow(t *testing.T) {
	db := sqlDB(t)

	sql := pageSQL(db, domain.ListQuery{Page: query.NewPage(3, 5, 10)})
	assert.Contains(t, sql, "LIMIT 5 OFFSET 10")

	// pages past the end still ask for a window; postgres returns no rows
	sql = pageSQL(db, domain.ListQuery{Page: query.NewPage(40, 5, 10)})
	assert.Contains(t, sql, "LIMIT 5 OFFSET 195")
}

func TestUserSearchScope(t *testing.T) {
	db := sqlDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return tx.Model(&models.User{}).
			Scopes(userSearchScope(user.ListQuery{Role: user.RoleStaff, Search: "Lima"})).
			Find(&[]models.User{})
	})

	assert.Contains(t, sql, "role = 'staff'")
	assert.Equal(t, 5, strings.Count(sql, "ILIKE '%Lima%'"))
}
