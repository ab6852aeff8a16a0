package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`

	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customer"`
	Customer   *User     `gorm:"foreignKey:CustomerID" json:"-"`

	StaffID uuid.UUID `gorm:"type:uuid;index;not null" json:"staff"`
	Staff   *User     `gorm:"foreignKey:StaffID" json:"-"`

	ServiceID uuid.UUID `gorm:"type:uuid;index;not null" json:"service"`
	Service   *Service  `gorm:"foreignKey:ServiceID" json:"-"`

	StartTime time.Time `gorm:"index;not null" json:"startTime"`
	EndTime   time.Time `gorm:"not null" json:"endTime"`

	Status string `gorm:"size:20;index;default:'pending'" json:"status"`
	Notes  string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Appointment) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
