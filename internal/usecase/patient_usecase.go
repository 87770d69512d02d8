package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-scheduler/internal/converter"
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/domain/repository"
	"clinic-scheduler/internal/service"
	"clinic-scheduler/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound    = errors.New("patient not found")
	ErrPatientEmailExists = errors.New("patient email already exists")
	ErrBirthDateInFuture  = errors.New("birth date cannot be in the future")
)

type PatientUsecase interface {
	CreatePatient(ctx context.Context, clinicID uuid.UUID, req *dto.UpsertPatientRequest) (*dto.PatientResponse, error)
	UpdatePatient(ctx context.Context, clinicID, id uuid.UUID, req *dto.UpsertPatientRequest) (*dto.PatientResponse, error)
	GetPatient(ctx context.Context, clinicID, id uuid.UUID) (*dto.PatientResponse, error)
	GetAllPatients(ctx context.Context, clinicID uuid.UUID) (*dto.PatientListResponse, error)
	DeletePatient(ctx context.Context, clinicID, id uuid.UUID) error
}

type patientUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	auditService service.AuditService
	now          func() time.Time
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:           db,
		log:          log,
		patientRepo:  patientRepo,
		auditService: auditService,
		now:          time.Now,
	}
}

func (u *patientUsecase) CreatePatient(ctx context.Context, clinicID uuid.UUID, req *dto.UpsertPatientRequest) (*dto.PatientResponse, error) {
	patient := &entity.Patient{ClinicID: clinicID}
	if err := applyPatientRequest(patient, req, u.now()); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.patientRepo.Create(tx, patient); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrPatientEmailExists
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, actorFromContext(ctx), entity.AuditActionPatientCreate, "patient", patient.ID.String(), patient); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) UpdatePatient(ctx context.Context, clinicID, id uuid.UUID, req *dto.UpsertPatientRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(tx, clinicID, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	oldPatient := *patient
	if err := applyPatientRequest(patient, req, u.now()); err != nil {
		return nil, err
	}

	if err := u.patientRepo.Update(tx, patient); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrPatientEmailExists
		}
		u.log.Warnf("Failed to update patient: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, actorFromContext(ctx), entity.AuditActionPatientUpdate, "patient", patient.ID.String(), oldPatient, patient); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, clinicID, id uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), clinicID, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetAllPatients(ctx context.Context, clinicID uuid.UUID) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindAllByClinic(u.db.WithContext(ctx), clinicID)
	if err != nil {
		u.log.Warnf("Failed to find patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}

func (u *patientUsecase) DeletePatient(ctx context.Context, clinicID, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(tx, clinicID, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}

	rowsAffected, err := u.patientRepo.Delete(tx, clinicID, id)
	if err != nil {
		u.log.Warnf("Failed to delete patient: %+v", err)
		return err
	}
	if rowsAffected == 0 {
		return ErrPatientNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, actorFromContext(ctx), entity.AuditActionPatientDelete, "patient", id.String(), patient); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// applyPatientRequest copies the request onto patient. IsActive keeps its current value when omitted.
func applyPatientRequest(patient *entity.Patient, req *dto.UpsertPatientRequest, now time.Time) error {
	birthDate, err := time.Parse(validator.DateLayout, req.BirthDate)
	if err != nil {
		return ErrInvalidDateFormat
	}
	if birthDate.After(now) {
		return ErrBirthDateInFuture
	}

	patient.Name = req.Name
	patient.Email = normalizeEmail(req.Email)
	patient.PhoneNumber = req.PhoneNumber
	patient.Gender = req.Gender
	patient.BirthDate = &birthDate
	if req.IsActive != nil {
		active := *req.IsActive
		patient.IsActive = &active
	}
	return nil
}
