package dto

import (
	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// AdminUserDTO is a row of the back-office customer table.
type AdminUserDTO struct {
	ID     uuid.UUID `json:"_id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Phone  string    `json:"phone"`
	Role   string    `json:"role"`
	Status string    `json:"status"`
}

type StaffServiceDTO struct {
	ID   uuid.UUID `json:"_id"`
	Name string    `json:"name"`
}

// AdminStaffDTO is a row of the back-office staff table.
type AdminStaffDTO struct {
	ID           uuid.UUID           `json:"_id"`
	Name         string              `json:"name"`
	Email        string              `json:"email"`
	Phone        string              `json:"phone"`
	Status       string              `json:"status"`
	ImageURL     string              `json:"imageUrl,omitempty"`
	WorkingHours models.WorkingHours `json:"workingHours"`
	Services     []StaffServiceDTO   `json:"services"`
}

func AdminUsers(users []models.User) []AdminUserDTO {
	out := make([]AdminUserDTO, 0, len(users))
	for i := range users {
		u := &users[i]
		out = append(out, AdminUserDTO{
			ID:     u.ID,
			Name:   u.FullName(),
			Email:  u.Email,
			Phone:  u.Phone,
			Role:   u.Role,
			Status: u.Status,
		})
	}
	return out
}

func AdminStaff(users []models.User) []AdminStaffDTO {
	out := make([]AdminStaffDTO, 0, len(users))
	for i := range users {
		u := &users[i]
		services := make([]StaffServiceDTO, 0, len(u.Services))
		for _, s := range u.Services {
			services = append(services, StaffServiceDTO{ID: s.ID, Name: s.Name})
		}
		out = append(out, AdminStaffDTO{
			ID:           u.ID,
			Name:         u.FullName(),
			Email:        u.Email,
			Phone:        u.Phone,
			Status:       u.Status,
			ImageURL:     u.ImageURL,
			WorkingHours: u.WorkingHours,
			Services:     services,
		})
	}
	return out
}
