package repository

import (
	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(db *gorm.DB, doctor *entity.Doctor) error
	FindByID(db *gorm.DB, clinicID, id uuid.UUID) (*entity.Doctor, error)
	FindAllByClinic(db *gorm.DB, clinicID uuid.UUID) ([]entity.Doctor, error)
	// FindBatch pages through every doctor of every clinic, ordered by id.
	FindBatch(db *gorm.DB, limit, offset int) ([]entity.Doctor, error)
	Update(db *gorm.DB, doctor *entity.Doctor) error
	Delete(db *gorm.DB, clinicID, id uuid.UUID) (int64, error)
}
