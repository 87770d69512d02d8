package repository

import (
	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(db *gorm.DB, log *entity.AuditLog) error
	FindAllByClinic(db *gorm.DB, clinicID uuid.UUID, limit, offset int) ([]entity.AuditLog, int64, error)
	FindByID(db *gorm.DB, clinicID uuid.UUID, id int64) (*entity.AuditLog, error)
}
