package repository

import (
	"doctor-directory/internal/domain/entity"

	"gorm.io/gorm"
)

type SpecialtyRepository interface {
	Create(db *gorm.DB, specialty *entity.Specialty) error
	FindByID(db *gorm.DB, id int) (*entity.Specialty, error)
	FindBySlug(db *gorm.DB, slug string) (*entity.Specialty, error)
	FindByIDs(db *gorm.DB, ids []int) ([]entity.Specialty, error)
	FindAll(db *gorm.DB, search string) ([]entity.Specialty, error)
	SlugExists(db *gorm.DB, slug string) (bool, error)
	Update(db *gorm.DB, specialty *entity.Specialty) error
	Delete(db *gorm.DB, id int) (int64, error)

	// FindForFeaturedDoctors returns specialties attached to any featured doctor.
	FindForFeaturedDoctors(db *gorm.DB, limit int) ([]entity.Specialty, error)
	// FindTopWithDoctorCount returns specialties with at least one doctor,
	// most practised first.
	FindTopWithDoctorCount(db *gorm.DB, limit int) ([]entity.SpecialtyCount, error)
}
