package entity

import (
	"time"

	"github.com/google/uuid"
)

// Appointment is a booked visit. AppointmentDateTime is an absolute instant and
// AppointmentPriceInCents is the price at booking time.
type Appointment struct {
	ID                      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClinicID                uuid.UUID `gorm:"type:uuid;not null;index" json:"clinic_id"`
	PatientID               uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID                uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	AppointmentDateTime     time.Time `gorm:"type:timestamptz;not null;index" json:"appointment_date_time"`
	AppointmentPriceInCents int       `gorm:"not null" json:"appointment_price_in_cents"`
	CreatedAt               time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// AppointmentFilter narrows appointment listings within a clinic
type AppointmentFilter struct {
	DoctorID  *uuid.UUID
	PatientID *uuid.UUID
	From      *time.Time
	To        *time.Time
}
