package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-scheduler/internal/converter"
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/availability"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/domain/repository"
	"clinic-scheduler/internal/service"
	"clinic-scheduler/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound              = errors.New("doctor not found")
	ErrInvalidAvailabilityWeekDay  = errors.New("availability week days must be between 0 (Sunday) and 6 (Saturday)")
	ErrInvalidAvailabilityTime     = errors.New("availability_from_time must be before availability_to_time")
	ErrAvailabilityCrossesMidnight = errors.New("availability window crosses midnight UTC, split it into a window that stays within one UTC day")
	ErrInvalidDateFormat           = errors.New("invalid date format, use YYYY-MM-DD")
	ErrDateInPast                  = errors.New("date must be today or later")
)

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, clinicID uuid.UUID, req *dto.UpsertDoctorRequest) (*dto.DoctorResponse, error)
	UpdateDoctor(ctx context.Context, clinicID, id uuid.UUID, req *dto.UpsertDoctorRequest) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, clinicID, id uuid.UUID) (*dto.DoctorResponse, error)
	GetAllDoctors(ctx context.Context, clinicID uuid.UUID) (*dto.DoctorListResponse, error)
	DeleteDoctor(ctx context.Context, clinicID, id uuid.UUID) error
	GetAvailableSlots(ctx context.Context, clinicID, id uuid.UUID, date string) (*dto.DoctorSlotsResponse, error)
}

type doctorUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	doctorRepo   repository.DoctorRepository
	auditService service.AuditService
	slotCache    service.SlotCacheService
	engine       *availability.Engine
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
	slotCache service.SlotCacheService,
	engine *availability.Engine,
) DoctorUsecase {
	return &doctorUsecase{
		db:           db,
		log:          log,
		doctorRepo:   doctorRepo,
		auditService: auditService,
		slotCache:    slotCache,
		engine:       engine,
	}
}

func (u *doctorUsecase) CreateDoctor(ctx context.Context, clinicID uuid.UUID, req *dto.UpsertDoctorRequest) (*dto.DoctorResponse, error) {
	doctor := &entity.Doctor{ClinicID: clinicID}
	if err := applyDoctorRequest(u.engine, doctor, req); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.doctorRepo.Create(tx, doctor); err != nil {
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, actorFromContext(ctx), entity.AuditActionDoctorCreate, "doctor", doctor.ID.String(), doctor); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor, u.engine), nil
}

func (u *doctorUsecase) UpdateDoctor(ctx context.Context, clinicID, id uuid.UUID, req *dto.UpsertDoctorRequest) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByID(tx, clinicID, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	oldDoctor := *doctor
	if err := applyDoctorRequest(u.engine, doctor, req); err != nil {
		return nil, err
	}

	if err := u.doctorRepo.Update(tx, doctor); err != nil {
		u.log.Warnf("Failed to update doctor: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, actorFromContext(ctx), entity.AuditActionDoctorUpdate, "doctor", doctor.ID.String(), oldDoctor, doctor); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.invalidateSlots(ctx, doctor.ID)

	return converter.DoctorToResponse(doctor, u.engine), nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, clinicID, id uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), clinicID, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor, u.engine), nil
}

func (u *doctorUsecase) GetAllDoctors(ctx context.Context, clinicID uuid.UUID) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAllByClinic(u.db.WithContext(ctx), clinicID)
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors, u.engine),
		Total:   len(doctors),
	}, nil
}

func (u *doctorUsecase) DeleteDoctor(ctx context.Context, clinicID, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByID(tx, clinicID, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	rowsAffected, err := u.doctorRepo.Delete(tx, clinicID, id)
	if err != nil {
		u.log.Warnf("Failed to delete doctor: %+v", err)
		return err
	}
	if rowsAffected == 0 {
		return ErrDoctorNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, actorFromContext(ctx), entity.AuditActionDoctorDelete, "doctor", id.String(), doctor); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.invalidateSlots(ctx, id)
	return nil
}

// GetAvailableSlots lists bookable times for a clinic calendar date, today when date is empty.
// A cached entry is served only when it was computed from the doctor row just loaded;
// a miss or an entry from an older version is recomputed and written back.
func (u *doctorUsecase) GetAvailableSlots(ctx context.Context, clinicID, id uuid.UUID, date string) (*dto.DoctorSlotsResponse, error) {
	day := u.engine.Today()
	if date != "" {
		parsed, err := parseLocalDate(u.engine, date)
		if err != nil {
			return nil, err
		}
		day = parsed
	}
	if !u.engine.IsBookableDate(day) {
		return nil, ErrDateInPast
	}

	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), clinicID, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	response := &dto.DoctorSlotsResponse{
		DoctorID: doctor.ID,
		Date:     day.Format(validator.DateLayout),
	}

	version := service.SlotVersion(doctor)

	cached, err := u.slotCache.Get(ctx, doctor.ID, day)
	if err != nil {
		u.log.Warnf("Failed to read slot cache: %+v", err)
	}
	if cached != nil && cached.Version == version {
		response.Slots = cached.Slots
		return response, nil
	}

	slots, err := service.DoctorSlots(u.engine, doctor, day)
	if err != nil {
		u.log.Warnf("Failed to compute slots: %+v", err)
		return nil, err
	}

	if err := u.slotCache.Set(ctx, service.SlotCacheEntry{DoctorID: doctor.ID, Date: day, Version: version, Slots: slots}); err != nil {
		u.log.Warnf("Failed to write slot cache: %+v", err)
	}

	response.Slots = slots
	return response, nil
}

// invalidateSlots drops cached slots after a committed change. Failures are logged, not returned.
func (u *doctorUsecase) invalidateSlots(ctx context.Context, doctorID uuid.UUID) {
	if err := u.slotCache.Invalidate(ctx, doctorID); err != nil {
		u.log.Errorf("Failed to invalidate slot cache for doctor %s: %+v", doctorID, err)
	}
}

// applyDoctorRequest copies the request onto doctor, converting the wall-clock
// availability times to UTC. The submitted times must be ordered on the clinic
// clock and must still be ordered once normalized.
func applyDoctorRequest(engine *availability.Engine, doctor *entity.Doctor, req *dto.UpsertDoctorRequest) error {
	if req.AvailabilityFromWeekDay == nil || req.AvailabilityToWeekDay == nil ||
		!availability.ValidateWeekDayOrdering(*req.AvailabilityFromWeekDay, *req.AvailabilityToWeekDay) {
		return ErrInvalidAvailabilityWeekDay
	}

	reference := engine.Today()
	fromUTC, err := engine.NormalizeToUTC(req.AvailabilityFromTime, reference)
	if err != nil {
		return err
	}
	toUTC, err := engine.NormalizeToUTC(req.AvailabilityToTime, reference)
	if err != nil {
		return err
	}

	if !availability.ValidateTimeOrdering(req.AvailabilityFromTime, req.AvailabilityToTime) {
		return ErrInvalidAvailabilityTime
	}
	if !fromUTC.Before(toUTC) {
		return ErrAvailabilityCrossesMidnight
	}

	doctor.Name = req.Name
	doctor.AvatarImageURL = req.AvatarImageURL
	doctor.Specialty = req.Specialty
	doctor.Gender = req.Gender
	doctor.AppointmentPriceInCents = req.AppointmentPriceInCents
	doctor.AvailabilityFromWeekDay = *req.AvailabilityFromWeekDay
	doctor.AvailabilityToWeekDay = *req.AvailabilityToWeekDay
	doctor.AvailabilityFromTime = fromUTC.String()
	doctor.AvailabilityToTime = toUTC.String()
	return nil
}

// parseLocalDate parses YYYY-MM-DD as midnight on the clinic calendar.
func parseLocalDate(engine *availability.Engine, value string) (time.Time, error) {
	day, err := time.ParseInLocation(validator.DateLayout, value, engine.Location())
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return day, nil
}
