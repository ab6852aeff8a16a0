package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// PersonRef is a populated customer or staff reference. Only the id is set
// when the referenced user no longer exists.
type PersonRef struct {
	ID        uuid.UUID `json:"_id"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	ImageURL  string    `json:"imageUrl,omitempty"`
}

type ServiceRef struct {
	ID       uuid.UUID `json:"_id"`
	Name     string    `json:"name,omitempty"`
	Duration int       `json:"duration,omitempty"`
	Price    float64   `json:"price,omitempty"`
	Category string    `json:"category,omitempty"`
}

type AppointmentDTO struct {
	ID        uuid.UUID  `json:"_id"`
	Customer  PersonRef  `json:"customer"`
	Staff     PersonRef  `json:"staff"`
	Service   ServiceRef `json:"service"`
	StartTime time.Time  `json:"startTime"`
	EndTime   time.Time  `json:"endTime"`
	Status    string     `json:"status"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func personRef(id uuid.UUID, u *models.User) PersonRef {
	if u == nil || u.ID != id {
		return PersonRef{ID: id}
	}
	return PersonRef{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		ImageURL:  u.ImageURL,
	}
}

func serviceRef(id uuid.UUID, s *models.Service) ServiceRef {
	if s == nil || s.ID != id {
		return ServiceRef{ID: id}
	}
	return ServiceRef{
		ID:       s.ID,
		Name:     s.Name,
		Duration: s.Duration,
		Price:    s.Price,
		Category: s.Category,
	}
}

func Appointment(a *models.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:        a.ID,
		Customer:  personRef(a.CustomerID, a.Customer),
		Staff:     personRef(a.StaffID, a.Staff),
		Service:   serviceRef(a.ServiceID, a.Service),
		StartTime: a.StartTime,
		EndTime:   a.EndTime,
		Status:    a.Status,
		Notes:     a.Notes,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func Appointments(apps []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(apps))
	for i := range apps {
		out = append(out, Appointment(&apps[i]))
	}
	return out
}
