package appointment

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/query"
)

// ListFilter is the set of predicates an appointment listing may apply. A
// nil or empty field means "no constraint".
type ListFilter struct {
	CustomerID *uuid.UUID
	StaffID    *uuid.UUID
	Status     *Status

	// StartFrom is inclusive. StartThrough is inclusive, StartBefore exclusive.
	StartFrom    *time.Time
	StartThrough *time.Time
	StartBefore  *time.Time

	// Text matches customer name/email, service name, staff name or status,
	// case-insensitively.
	Text string
}

type FilterBuilder struct {
	f ListFilter
}

func NewFilter() *FilterBuilder {
	return &FilterBuilder{}
}

func (b *FilterBuilder) ByCustomer(id uuid.UUID) *FilterBuilder {
	b.f.CustomerID = &id
	return b
}

func (b *FilterBuilder) ByStaff(id uuid.UUID) *FilterBuilder {
	b.f.StaffID = &id
	return b
}

func (b *FilterBuilder) ByStatus(s Status) *FilterBuilder {
	b.f.Status = &s
	return b
}

// ByDateRange keeps appointments starting in [from, to].
func (b *FilterBuilder) ByDateRange(from, to time.Time) *FilterBuilder {
	b.f.StartFrom = &from
	b.f.StartThrough = &to
	b.f.StartBefore = nil
	return b
}

// InMonth keeps appointments starting in the calendar month of m, in m's
// location.
func (b *FilterBuilder) InMonth(m time.Time) *FilterBuilder {
	first := time.Date(m.Year(), m.Month(), 1, 0, 0, 0, 0, m.Location())
	next := first.AddDate(0, 1, 0)
	b.f.StartFrom = &first
	b.f.StartBefore = &next
	b.f.StartThrough = nil
	return b
}

func (b *FilterBuilder) ByText(q string) *FilterBuilder {
	b.f.Text = strings.TrimSpace(q)
	return b
}

func (b *FilterBuilder) Build() ListFilter {
	return b.f
}

// ParseMonth accepts "YYYY-MM". An empty value yields the month of now.
func ParseMonth(raw string, now time.Time) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	}
	return time.ParseInLocation("2006-01", strings.TrimSpace(raw), now.Location())
}

// ===============================
// Sorting
// ===============================

type SortField string

const (
	SortStartTime SortField = "startTime"
	SortEndTime   SortField = "endTime"
	SortStatus    SortField = "status"
	SortCreatedAt SortField = "createdAt"
	SortCustomer  SortField = "customer"
	SortService   SortField = "service"
	SortStaff     SortField = "staff"
)

func ParseSortField(raw string) SortField {
	switch f := SortField(strings.TrimSpace(raw)); f {
	case SortStartTime, SortEndTime, SortStatus, SortCreatedAt, SortCustomer, SortService, SortStaff:
		return f
	}
	return SortStartTime
}

type ListQuery struct {
	Filter ListFilter
	Sort   SortField
	Desc   bool
	Page   query.Page
}
