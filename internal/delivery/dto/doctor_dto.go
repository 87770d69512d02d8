package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// UpsertDoctorRequest carries availability times on the clinic wall clock.
type UpsertDoctorRequest struct {
	Name                    string  `json:"name" validate:"required,min=1,max=255"`
	AvatarImageURL          *string `json:"avatar_image_url" validate:"omitempty,url"`
	Specialty               string  `json:"specialty" validate:"required,specialty"`
	Gender                  string  `json:"gender" validate:"required,oneof=male female"`
	AppointmentPriceInCents int     `json:"appointment_price_in_cents" validate:"required,gt=0"`
	AvailabilityFromWeekDay *int    `json:"availability_from_week_day" validate:"required,weekday"`
	AvailabilityToWeekDay   *int    `json:"availability_to_week_day" validate:"required,weekday"`
	AvailabilityFromTime    string  `json:"availability_from_time" validate:"required,timeofday"`
	AvailabilityToTime      string  `json:"availability_to_time" validate:"required,timeofday"`
}

// Response DTOs

type DoctorResponse struct {
	ID                      uuid.UUID            `json:"id"`
	ClinicID                uuid.UUID            `json:"clinic_id"`
	Name                    string               `json:"name"`
	AvatarImageURL          *string              `json:"avatar_image_url,omitempty"`
	Specialty               string               `json:"specialty"`
	Gender                  string               `json:"gender"`
	AppointmentPriceInCents int                  `json:"appointment_price_in_cents"`
	AppointmentPrice        string               `json:"appointment_price"`
	Availability            AvailabilityResponse `json:"availability"`
	CreatedAt               time.Time            `json:"created_at"`
	UpdatedAt               time.Time            `json:"updated_at"`
}

// AvailabilityResponse shows the stored UTC window and its clinic wall-clock rendering.
type AvailabilityResponse struct {
	FromWeekDay int                    `json:"from_week_day"`
	ToWeekDay   int                    `json:"to_week_day"`
	FromTimeUTC string                 `json:"from_time_utc"`
	ToTimeUTC   string                 `json:"to_time_utc"`
	Display     *DisplayWindowResponse `json:"display,omitempty"`
}

type DisplayWindowResponse struct {
	From DisplayPointResponse `json:"from"`
	To   DisplayPointResponse `json:"to"`
}

type DisplayPointResponse struct {
	WeekDay     int    `json:"week_day"`
	WeekDayName string `json:"week_day_name"`
	Time        string `json:"time"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

type DoctorSlotsResponse struct {
	DoctorID uuid.UUID `json:"doctor_id"`
	Date     string    `json:"date"`
	Slots    []string  `json:"slots"`
}
