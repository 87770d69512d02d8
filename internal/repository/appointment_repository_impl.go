package repository

import (
	"errors"

	"clinic-scheduler/internal/domain/entity"
	domainRepo "clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("Patient", "Doctor").Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, clinicID, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Patient").Preload("Doctor").
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAllByClinic(db *gorm.DB, clinicID uuid.UUID, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment

	query := db.Preload("Patient").Preload("Doctor").Where("clinic_id = ?", clinicID)
	if filter.DoctorID != nil {
		query = query.Where("doctor_id = ?", *filter.DoctorID)
	}
	if filter.PatientID != nil {
		query = query.Where("patient_id = ?", *filter.PatientID)
	}
	if filter.From != nil {
		query = query.Where("appointment_date_time >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("appointment_date_time < ?", *filter.To)
	}

	err := query.Order("appointment_date_time ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) Delete(db *gorm.DB, clinicID, id uuid.UUID) (int64, error) {
	result := db.Where("id = ? AND clinic_id = ?", id, clinicID).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}
