package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`

	Email        string `gorm:"size:100;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	FirstName    string `gorm:"size:100;not null" json:"firstName"`
	LastName     string `gorm:"size:100;not null" json:"lastName"`
	Phone        string `gorm:"size:30" json:"phone"`
	Role         string `gorm:"size:20;index;default:'customer'" json:"role"`
	Status       string `gorm:"size:20;default:'active'" json:"status"`
	ImageURL     string `gorm:"size:255" json:"imageUrl,omitempty"`

	WorkingHours WorkingHours `gorm:"embedded;embeddedPrefix:wh_" json:"workingHours"`

	// Only meaningful for staff.
	Services []Service `gorm:"many2many:staff_services;" json:"services,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.WorkingHours.IsZero() {
		u.WorkingHours = DefaultWorkingHours()
	}
	return nil
}

func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
