package usecase

import (
	"context"
	"errors"

	"clinic-scheduler/internal/converter"
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/domain/repository"
	"clinic-scheduler/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrClinicNotFound = errors.New("clinic not found")
)

type ClinicUsecase interface {
	CreateClinic(ctx context.Context, userID uuid.UUID, req *dto.CreateClinicRequest) (*dto.ClinicResponse, error)
	GetCurrentClinic(ctx context.Context, userID uuid.UUID) (*dto.ClinicResponse, error)
	ResolveClinic(ctx context.Context, userID uuid.UUID) (*entity.Clinic, error)
}

type clinicUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	clinicRepo   repository.ClinicRepository
	auditService service.AuditService
}

func NewClinicUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clinicRepo repository.ClinicRepository,
	auditService service.AuditService,
) ClinicUsecase {
	return &clinicUsecase{
		db:           db,
		log:          log,
		clinicRepo:   clinicRepo,
		auditService: auditService,
	}
}

// CreateClinic creates a clinic and links the creating user to it.
func (u *clinicUsecase) CreateClinic(ctx context.Context, userID uuid.UUID, req *dto.CreateClinicRequest) (*dto.ClinicResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	clinic := &entity.Clinic{Name: req.Name}
	if err := u.clinicRepo.Create(tx, clinic); err != nil {
		u.log.Warnf("Failed to create clinic: %+v", err)
		return nil, err
	}

	link := &entity.UserClinic{UserID: userID, ClinicID: clinic.ID}
	if err := u.clinicRepo.LinkUser(tx, link); err != nil {
		if isForeignKeyError(err, "user") {
			return nil, ErrUserNotFound
		}
		u.log.Warnf("Failed to link user to clinic: %+v", err)
		return nil, err
	}

	actor := service.NewActor(userID, clinic.ID)
	if err := u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionClinicCreate, "clinic", clinic.ID.String(), converter.ClinicToResponse(clinic)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ClinicToResponse(clinic), nil
}

func (u *clinicUsecase) GetCurrentClinic(ctx context.Context, userID uuid.UUID) (*dto.ClinicResponse, error) {
	clinic, err := u.ResolveClinic(ctx, userID)
	if err != nil {
		return nil, err
	}
	if clinic == nil {
		return nil, ErrClinicNotFound
	}

	return converter.ClinicToResponse(clinic), nil
}

// ResolveClinic returns the user's first clinic, or nil when the user has none.
func (u *clinicUsecase) ResolveClinic(ctx context.Context, userID uuid.UUID) (*entity.Clinic, error) {
	clinic, err := u.clinicRepo.FindFirstByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find clinic for user: %+v", err)
		return nil, err
	}
	return clinic, nil
}
