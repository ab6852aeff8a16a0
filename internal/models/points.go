package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PointsEarn   = "earn"
	PointsRedeem = "redeem"
)

// PointsTransaction is one entry of a customer's points ledger. Earn rows
// carry the appointment that produced them; the unique index keeps awards
// idempotent per appointment.
type PointsTransaction struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`

	Kind   string `gorm:"size:10;not null" json:"type"`
	Points int    `gorm:"not null" json:"points"`

	AppointmentID *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"appointmentId,omitempty"`
	RewardID      *int       `json:"rewardId,omitempty"`

	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (p *PointsTransaction) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
