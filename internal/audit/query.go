package audit

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/query"
)

// Filter narrows the audit trail listing. Zero values mean "any".
type Filter struct {
	Action string
	Entity string
	From   *time.Time
	// To is inclusive of the whole day it falls on.
	To *time.Time
}

func (f Filter) scope(db *gorm.DB) *gorm.DB {
	if f.Action != "" {
		db = db.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		db = db.Where("entity = ?", f.Entity)
	}
	if f.From != nil {
		db = db.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		db = db.Where("created_at < ?", f.To.Add(24*time.Hour))
	}
	return db
}

// List returns audit rows newest first.
func (l *Logger) List(ctx context.Context, f Filter, p query.Page) ([]models.AuditLog, int64, error) {
	var total int64
	if err := l.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Scopes(f.scope).
		Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count audit logs")
	}

	var logs []models.AuditLog
	if err := l.db.WithContext(ctx).
		Scopes(f.scope).
		Order("created_at DESC").
		Order("id DESC").
		Limit(p.Limit).
		Offset(p.Offset()).
		Find(&logs).Error; err != nil {
		return nil, 0, errors.Wrap(err, "list audit logs")
	}
	return logs, total, nil
}
