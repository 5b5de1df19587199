package repository

import (
	"errors"

	"doctor-directory/internal/domain/entity"
	domainRepo "doctor-directory/internal/domain/repository"

	"gorm.io/gorm"
)

type hospitalRepository struct{}

func NewHospitalRepository() domainRepo.HospitalRepository {
	return &hospitalRepository{}
}

func (r *hospitalRepository) Create(db *gorm.DB, hospital *entity.Hospital) error {
	return db.Omit("Doctors").Create(hospital).Error
}

// FindByID loads the hospital with its doctors and their specialties.
func (r *hospitalRepository) FindByID(db *gorm.DB, id int) (*entity.Hospital, error) {
	var hospital entity.Hospital
	err := db.
		Preload("Doctors", func(db *gorm.DB) *gorm.DB { return db.Order("doctors.name ASC") }).
		Preload("Doctors.Specialties").
		Where("id = ?", id).
		First(&hospital).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &hospital, nil
}

func (r *hospitalRepository) FindAll(db *gorm.DB, filter *entity.HospitalFilter) ([]entity.Hospital, error) {
	hospitals := []entity.Hospital{}
	query := db
	if filter != nil {
		if filter.Search != "" {
			like := containsPattern(filter.Search)
			query = query.Where("(name ILIKE ? OR location ILIKE ?)", like, like)
		}
		if filter.Location != "" {
			query = query.Where("location = ?", filter.Location)
		}
	}
	err := query.Order("name ASC, id ASC").Find(&hospitals).Error
	if err != nil {
		return nil, err
	}
	return hospitals, nil
}

func (r *hospitalRepository) FindLatest(db *gorm.DB, limit int) ([]entity.Hospital, error) {
	hospitals := []entity.Hospital{}
	err := db.Order("id DESC").Limit(limit).Find(&hospitals).Error
	if err != nil {
		return nil, err
	}
	return hospitals, nil
}

func (r *hospitalRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Hospital{}).Count(&count).Error
	return count, err
}

func (r *hospitalRepository) Update(db *gorm.DB, hospital *entity.Hospital) error {
	return db.Omit("Doctors").Save(hospital).Error
}

// Delete removes the hospital; the doctors.hospital_id foreign key is
// ON DELETE SET NULL so referencing doctors survive.
func (r *hospitalRepository) Delete(db *gorm.DB, id int) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Hospital{})
	return result.RowsAffected, result.Error
}
