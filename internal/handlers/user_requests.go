package handlers

import (
	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/directory"
)

// UserRequest is the admin payload for creating or editing customers and
// staff. Absent fields are left untouched on update.
type UserRequest struct {
	FirstName    *string              `json:"firstName"`
	LastName     *string              `json:"lastName"`
	Email        *string              `json:"email"`
	Phone        *string              `json:"phone"`
	Password     *string              `json:"password"`
	Status       *string              `json:"status" binding:"omitempty,oneof=active inactive"`
	ImageURL     *string              `json:"imageUrl"`
	WorkingHours *WorkingHoursRequest `json:"workingHours"`
	Services     *[]string            `json:"services"`
}

func (r UserRequest) input() (directory.UserInput, error) {
	in := directory.UserInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Password:  r.Password,
		Status:    r.Status,
		ImageURL:  r.ImageURL,
	}

	if r.WorkingHours != nil {
		hours := r.WorkingHours.model()
		in.WorkingHours = &hours
	}

	if r.Services != nil {
		ids := make([]uuid.UUID, 0, len(*r.Services))
		for _, raw := range *r.Services {
			id, err := uuid.Parse(raw)
			if err != nil {
				return in, errInvalidID
			}
			ids = append(ids, id)
		}
		in.ServiceIDs = &ids
	}

	return in, nil
}

type ServiceRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Duration    *int     `json:"duration"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category" binding:"omitempty,category"`
	ImageURL    *string  `json:"imageUrl"`
	IsActive    *bool    `json:"isActive"`
}

func (r ServiceRequest) input() directory.ServiceInput {
	return directory.ServiceInput{
		Name:        r.Name,
		Description: r.Description,
		Duration:    r.Duration,
		Price:       r.Price,
		Category:    r.Category,
		ImageURL:    r.ImageURL,
		IsActive:    r.IsActive,
	}
}
