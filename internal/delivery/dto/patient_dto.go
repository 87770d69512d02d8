package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type UpsertPatientRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"required,min=8,max=20"`
	Gender      string `json:"gender" validate:"required,oneof=male female"`
	BirthDate   string `json:"birth_date" validate:"required,isodate"`
	IsActive    *bool  `json:"is_active"`
}

// Response DTOs

type PatientResponse struct {
	ID          uuid.UUID `json:"id"`
	ClinicID    uuid.UUID `json:"clinic_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	Gender      string    `json:"gender"`
	BirthDate   string    `json:"birth_date,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
