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

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound    = errors.New("appointment not found")
	ErrOutsideAvailability    = errors.New("time outside doctor's availability window")
	ErrInvalidAppointmentTime = errors.New("invalid time format, use HH:MM")
	ErrInvalidDateRange       = errors.New("from date must not be after to date")
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, clinicID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, clinicID, id uuid.UUID) (*dto.AppointmentResponse, error)
	GetAllAppointments(ctx context.Context, clinicID uuid.UUID, query *dto.ListAppointmentsQuery) (*dto.AppointmentListResponse, error)
	DeleteAppointment(ctx context.Context, clinicID, id uuid.UUID) error
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	patientRepo     repository.PatientRepository
	auditService    service.AuditService
	engine          *availability.Engine
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
	engine *availability.Engine,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		auditService:    auditService,
		engine:          engine,
	}
}

func (u *appointmentUsecase) CreateAppointment(ctx context.Context, clinicID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return nil, ErrDoctorNotFound
	}
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, ErrPatientNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByID(tx, clinicID, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	patient, err := u.patientRepo.FindByID(tx, clinicID, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	appointmentAt, err := validateAppointment(u.engine, doctor, req.AppointmentDate, req.AppointmentTime)
	if err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		ClinicID:                clinicID,
		PatientID:               patient.ID,
		DoctorID:                doctor.ID,
		AppointmentDateTime:     appointmentAt.UTC(),
		AppointmentPriceInCents: appointmentPrice(doctor, req.AppointmentPriceInCents),
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		if isForeignKeyError(err, "doctor") {
			return nil, ErrDoctorNotFound
		}
		if isForeignKeyError(err, "patient") {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, actorFromContext(ctx), entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), appointment); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	appointment.Doctor = *doctor
	appointment.Patient = *patient
	return converter.AppointmentToResponse(appointment, u.engine.Location()), nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, clinicID, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), clinicID, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	return converter.AppointmentToResponse(appointment, u.engine.Location()), nil
}

func (u *appointmentUsecase) GetAllAppointments(ctx context.Context, clinicID uuid.UUID, query *dto.ListAppointmentsQuery) (*dto.AppointmentListResponse, error) {
	filter, err := buildAppointmentFilter(u.engine, query)
	if err != nil {
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindAllByClinic(u.db.WithContext(ctx), clinicID, filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments, u.engine.Location()),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) DeleteAppointment(ctx context.Context, clinicID, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, clinicID, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	rowsAffected, err := u.appointmentRepo.Delete(tx, clinicID, id)
	if err != nil {
		u.log.Warnf("Failed to delete appointment: %+v", err)
		return err
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, actorFromContext(ctx), entity.AuditActionAppointmentDelete, "appointment", id.String(), converter.AppointmentToResponse(appointment, u.engine.Location())); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// validateAppointment checks a clinic-calendar date and wall-clock time against the
// doctor's window and returns the appointment instant.
func validateAppointment(engine *availability.Engine, doctor *entity.Doctor, date, clock string) (time.Time, error) {
	day, err := parseLocalDate(engine, date)
	if err != nil {
		return time.Time{}, err
	}
	at, err := availability.ParseTimeOfDay(clock)
	if err != nil {
		return time.Time{}, ErrInvalidAppointmentTime
	}

	if !engine.IsBookableDate(day) {
		return time.Time{}, ErrDateInPast
	}

	window, err := doctor.Window()
	if err != nil {
		return time.Time{}, ErrOutsideAvailability
	}
	if !engine.IsWithinAvailability(window, day, at) {
		return time.Time{}, ErrOutsideAvailability
	}

	return engine.AppointmentInstant(day, at), nil
}

// appointmentPrice snapshots the requested price, or the doctor's current price when none was given.
func appointmentPrice(doctor *entity.Doctor, requested int) int {
	if requested > 0 {
		return requested
	}
	return doctor.AppointmentPriceInCents
}

// buildAppointmentFilter maps list query parameters onto a repository filter.
// From and To are clinic calendar dates; To is inclusive.
func buildAppointmentFilter(engine *availability.Engine, query *dto.ListAppointmentsQuery) (entity.AppointmentFilter, error) {
	var filter entity.AppointmentFilter
	if query == nil {
		return filter, nil
	}

	if query.DoctorID != "" {
		id, err := uuid.Parse(query.DoctorID)
		if err != nil {
			return filter, ErrDoctorNotFound
		}
		filter.DoctorID = &id
	}
	if query.PatientID != "" {
		id, err := uuid.Parse(query.PatientID)
		if err != nil {
			return filter, ErrPatientNotFound
		}
		filter.PatientID = &id
	}
	if query.From != "" {
		from, err := parseLocalDate(engine, query.From)
		if err != nil {
			return filter, err
		}
		filter.From = &from
	}
	if query.To != "" {
		to, err := parseLocalDate(engine, query.To)
		if err != nil {
			return filter, err
		}
		end := to.AddDate(0, 0, 1)
		filter.To = &end
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return filter, ErrInvalidDateRange
	}

	return filter, nil
}
