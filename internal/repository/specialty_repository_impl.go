package repository

import (
	"errors"

	"doctor-directory/internal/domain/entity"
	domainRepo "doctor-directory/internal/domain/repository"

	"gorm.io/gorm"
)

type specialtyRepository struct{}

func NewSpecialtyRepository() domainRepo.SpecialtyRepository {
	return &specialtyRepository{}
}

func (r *specialtyRepository) Create(db *gorm.DB, specialty *entity.Specialty) error {
	return db.Omit("Doctors").Create(specialty).Error
}

func (r *specialtyRepository) FindByID(db *gorm.DB, id int) (*entity.Specialty, error) {
	var specialty entity.Specialty
	err := db.Where("id = ?", id).First(&specialty).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &specialty, nil
}

func (r *specialtyRepository) FindBySlug(db *gorm.DB, slug string) (*entity.Specialty, error) {
	var specialty entity.Specialty
	err := db.Where("slug = ?", slug).First(&specialty).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &specialty, nil
}

func (r *specialtyRepository) FindByIDs(db *gorm.DB, ids []int) ([]entity.Specialty, error) {
	specialties := []entity.Specialty{}
	if len(ids) == 0 {
		return specialties, nil
	}
	err := db.Where("id IN ?", ids).Order("name ASC").Find(&specialties).Error
	if err != nil {
		return nil, err
	}
	return specialties, nil
}

func (r *specialtyRepository) FindAll(db *gorm.DB, search string) ([]entity.Specialty, error) {
	specialties := []entity.Specialty{}
	query := db
	if search != "" {
		query = query.Where("name ILIKE ?", containsPattern(search))
	}
	err := query.Order("name ASC").Find(&specialties).Error
	if err != nil {
		return nil, err
	}
	return specialties, nil
}

func (r *specialtyRepository) SlugExists(db *gorm.DB, slug string) (bool, error) {
	var count int64
	err := db.Model(&entity.Specialty{}).Where("slug = ?", slug).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *specialtyRepository) Update(db *gorm.DB, specialty *entity.Specialty) error {
	return db.Omit("Doctors").Save(specialty).Error
}

func (r *specialtyRepository) Delete(db *gorm.DB, id int) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Specialty{})
	return result.RowsAffected, result.Error
}

func (r *specialtyRepository) FindForFeaturedDoctors(db *gorm.DB, limit int) ([]entity.Specialty, error) {
	featured := db.Table("doctor_specialties").
		Select("doctor_specialties.specialty_id").
		Joins("JOIN doctors ON doctors.id = doctor_specialties.doctor_id").
		Where("doctors.is_featured = ?", true)

	specialties := []entity.Specialty{}
	err := db.Where("id IN (?)", featured).
		Order("name ASC").
		Limit(limit).
		Find(&specialties).Error
	if err != nil {
		return nil, err
	}
	return specialties, nil
}

func (r *specialtyRepository) FindTopWithDoctorCount(db *gorm.DB, limit int) ([]entity.SpecialtyCount, error) {
	counts := []entity.SpecialtyCount{}
	err := db.Table("specialties").
		Select("specialties.id, specialties.name, specialties.slug, COUNT(doctor_specialties.doctor_id) AS doctor_count").
		Joins("JOIN doctor_specialties ON doctor_specialties.specialty_id = specialties.id").
		Group("specialties.id, specialties.name, specialties.slug").
		Order("doctor_count DESC, specialties.name ASC").
		Limit(limit).
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
