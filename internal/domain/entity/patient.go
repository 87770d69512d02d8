package entity

import (
	"time"

	"github.com/google/uuid"
)

// Patient is a person registered at a clinic
type Patient struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClinicID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"clinic_id"`
	Name        string     `gorm:"type:varchar(255);not null;index" json:"name"`
	Email       string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PhoneNumber string     `gorm:"type:varchar(20);not null" json:"phone_number"`
	Gender      string     `gorm:"type:varchar(10);not null" json:"gender"`
	BirthDate   *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	IsActive    *bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Clinic Clinic `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}
