package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Duration    int     `gorm:"not null" json:"duration"`
	Price       float64 `gorm:"type:numeric(10,2);not null" json:"price"`
	Category    string  `gorm:"size:50;index;not null" json:"category"`
	ImageURL    string  `gorm:"size:255" json:"imageUrl,omitempty"`
	IsActive    bool    `gorm:"not null;index" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Service) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
