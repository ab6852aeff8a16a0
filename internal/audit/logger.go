package audit

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Event struct {
	ActorID  *uuid.UUID
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

// Recorder writes audit events. Failures never reach the caller.
type Recorder interface {
	Record(ctx context.Context, ev Event)
}

type Logger struct {
	db  *gorm.DB
	log *slog.Logger
}

func New(db *gorm.DB, log *slog.Logger) *Logger {
	return &Logger{db: db, log: log}
}

func (l *Logger) Record(ctx context.Context, ev Event) {
	var meta string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			meta = string(b)
		}
	}

	row := models.AuditLog{
		ActorID:  ev.ActorID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: meta,
	}

	if err := l.db.WithContext(ctx).Create(&row).Error; err != nil {
		l.log.WarnContext(ctx, "audit write failed",
			slog.String("action", ev.Action),
			slog.String("entity", ev.Entity),
			slog.String("entity_id", ev.EntityID),
			slog.Any("error", err),
		)
	}
}

// Nop discards events.
type Nop struct{}

func (Nop) Record(context.Context, Event) {}
