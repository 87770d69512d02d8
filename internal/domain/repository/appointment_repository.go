package repository

import (
	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, clinicID, id uuid.UUID) (*entity.Appointment, error)
	FindAllByClinic(db *gorm.DB, clinicID uuid.UUID, filter entity.AppointmentFilter) ([]entity.Appointment, error)
	Delete(db *gorm.DB, clinicID, id uuid.UUID) (int64, error)
}
