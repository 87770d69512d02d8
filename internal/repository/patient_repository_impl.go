package repository

import (
	"errors"

	"clinic-scheduler/internal/domain/entity"
	domainRepo "clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(db *gorm.DB, patient *entity.Patient) error {
	return db.Omit("Clinic").Create(patient).Error
}

func (r *patientRepository) FindByID(db *gorm.DB, clinicID, id uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("id = ? AND clinic_id = ?", id, clinicID).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindAllByClinic(db *gorm.DB, clinicID uuid.UUID) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := db.Where("clinic_id = ?", clinicID).Order("name ASC").Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) Update(db *gorm.DB, patient *entity.Patient) error {
	return db.Omit("Clinic", "CreatedAt").Save(patient).Error
}

func (r *patientRepository) Delete(db *gorm.DB, clinicID, id uuid.UUID) (int64, error) {
	result := db.Where("id = ? AND clinic_id = ?", id, clinicID).Delete(&entity.Patient{})
	return result.RowsAffected, result.Error
}
