package repository

import (
	"errors"

	"clinic-scheduler/internal/domain/entity"
	domainRepo "clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Create(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Omit("Clinic").Create(doctor).Error
}

func (r *doctorRepository) FindByID(db *gorm.DB, clinicID, id uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Where("id = ? AND clinic_id = ?", id, clinicID).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindAllByClinic(db *gorm.DB, clinicID uuid.UUID) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := db.Where("clinic_id = ?", clinicID).Order("name ASC").Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) FindBatch(db *gorm.DB, limit, offset int) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := db.Order("id").Limit(limit).Offset(offset).Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) Update(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Omit("Clinic", "CreatedAt").Save(doctor).Error
}

func (r *doctorRepository) Delete(db *gorm.DB, clinicID, id uuid.UUID) (int64, error) {
	result := db.Where("id = ? AND clinic_id = ?", id, clinicID).Delete(&entity.Doctor{})
	return result.RowsAffected, result.Error
}
