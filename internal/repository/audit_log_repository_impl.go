package repository

import (
	"errors"

	"clinic-scheduler/internal/domain/entity"
	domainRepo "clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type auditLogRepository struct{}

func NewAuditLogRepository() domainRepo.AuditLogRepository {
	return &auditLogRepository{}
}

func (r *auditLogRepository) Create(db *gorm.DB, log *entity.AuditLog) error {
	return db.Omit("User").Create(log).Error
}

func (r *auditLogRepository) FindAllByClinic(db *gorm.DB, clinicID uuid.UUID, limit, offset int) ([]entity.AuditLog, int64, error) {
	var (
		logs  []entity.AuditLog
		total int64
	)

	if err := db.Model(&entity.AuditLog{}).Where("clinic_id = ?", clinicID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("User").
		Where("clinic_id = ?", clinicID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (r *auditLogRepository) FindByID(db *gorm.DB, clinicID uuid.UUID, id int64) (*entity.AuditLog, error) {
	var log entity.AuditLog
	err := db.Preload("User").Where("id = ? AND clinic_id = ?", id, clinicID).First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}
