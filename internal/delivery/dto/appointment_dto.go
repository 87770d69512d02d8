package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// CreateAppointmentRequest takes the date and time on the clinic wall clock.
// A zero price means the doctor's current price.
type CreateAppointmentRequest struct {
	PatientID               string `json:"patient_id" validate:"required,uuid"`
	DoctorID                string `json:"doctor_id" validate:"required,uuid"`
	AppointmentPriceInCents int    `json:"appointment_price_in_cents" validate:"omitempty,gt=0"`
	AppointmentDate         string `json:"appointment_date" validate:"required,isodate"`
	AppointmentTime         string `json:"appointment_time" validate:"required,timeofday"`
}

type ListAppointmentsQuery struct {
	DoctorID  string `validate:"omitempty,uuid"`
	PatientID string `validate:"omitempty,uuid"`
	From      string `validate:"omitempty,isodate"`
	To        string `validate:"omitempty,isodate"`
}

// Response DTOs

type AppointmentResponse struct {
	ID                      uuid.UUID               `json:"id"`
	ClinicID                uuid.UUID               `json:"clinic_id"`
	AppointmentDateTime     time.Time               `json:"appointment_date_time"`
	LocalDate               string                  `json:"local_date"`
	LocalTime               string                  `json:"local_time"`
	AppointmentPriceInCents int                     `json:"appointment_price_in_cents"`
	AppointmentPrice        string                  `json:"appointment_price"`
	Patient                 *AppointmentPatientInfo `json:"patient,omitempty"`
	Doctor                  *AppointmentDoctorInfo  `json:"doctor,omitempty"`
	CreatedAt               time.Time               `json:"created_at"`
}

type AppointmentPatientInfo struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type AppointmentDoctorInfo struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Specialty string    `json:"specialty"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
