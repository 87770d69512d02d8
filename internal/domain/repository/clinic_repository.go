package repository

import (
	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClinicRepository interface {
	Create(db *gorm.DB, clinic *entity.Clinic) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Clinic, error)
	LinkUser(db *gorm.DB, link *entity.UserClinic) error
	// FindFirstByUserID returns the earliest clinic the user was linked to, or nil.
	FindFirstByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Clinic, error)
}
