package service

import (
	"context"

	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Actor identifies who made a change and in which clinic.
type Actor struct {
	UserID   *uuid.UUID
	ClinicID *uuid.UUID
}

// NewActor builds an Actor, treating uuid.Nil as unknown.
func NewActor(userID, clinicID uuid.UUID) Actor {
	var a Actor
	if userID != uuid.Nil {
		a.UserID = &userID
	}
	if clinicID != uuid.Nil {
		a.ClinicID = &clinicID
	}
	return a
}

type AuditService interface {
	LogCreate(ctx context.Context, tx *gorm.DB, actor Actor, action string, entityName string, entityID string, newValue interface{}) error
	LogUpdate(ctx context.Context, tx *gorm.DB, actor Actor, action string, entityName string, entityID string, oldValue, newValue interface{}) error
	LogDelete(ctx context.Context, tx *gorm.DB, actor Actor, action string, entityName string, entityID string, oldValue interface{}) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, tx *gorm.DB, actor Actor, action string, entityName string, entityID string, newValue interface{}) error {
	return s.write(tx, actor, action, entityName, entityID, nil, newValue)
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, tx *gorm.DB, actor Actor, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return s.write(tx, actor, action, entityName, entityID, oldValue, newValue)
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, tx *gorm.DB, actor Actor, action string, entityName string, entityID string, oldValue interface{}) error {
	return s.write(tx, actor, action, entityName, entityID, oldValue, nil)
}

func (s *auditService) write(tx *gorm.DB, actor Actor, action, entityName, entityID string, oldValue, newValue interface{}) error {
	auditLog := &entity.AuditLog{
		ClinicID:   actor.ClinicID,
		UserID:     actor.UserID,
		Action:     action,
		EntityType: entityName,
		EntityID:   entityID,
		Metadata:   auditMetadata(oldValue, newValue),
	}

	if err := s.auditRepo.Create(tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}

// auditMetadata keeps only the sides of the change that exist.
func auditMetadata(oldValue, newValue interface{}) entity.JSON {
	metadata := entity.JSON{}
	if oldValue != nil {
		metadata["old_value"] = oldValue
	}
	if newValue != nil {
		metadata["new_value"] = newValue
	}
	return metadata
}
