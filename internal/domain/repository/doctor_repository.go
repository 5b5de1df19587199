package repository

import (
	"doctor-directory/internal/domain/entity"

	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(db *gorm.DB, doctor *entity.Doctor) error
	UpdateSlug(db *gorm.DB, id int, slug string) error
	FindByID(db *gorm.DB, id int) (*entity.Doctor, error)
	FindBySlug(db *gorm.DB, slug string) (*entity.Doctor, error)
	FindByIDs(db *gorm.DB, ids []int) ([]entity.Doctor, error)
	FindAll(db *gorm.DB, filter *entity.DoctorFilter) ([]entity.Doctor, error)
	Update(db *gorm.DB, doctor *entity.Doctor) error
	ReplaceSpecialties(db *gorm.DB, doctor *entity.Doctor, specialties []entity.Specialty) error
	Delete(db *gorm.DB, id int) (int64, error)

	Count(db *gorm.DB) (int64, error)
	CountDistinctLocations(db *gorm.DB) (int64, error)
	FindDistinctLocations(db *gorm.DB) ([]string, error)
	// FindFeaturedRatings aggregates reviews for every featured doctor.
	FindFeaturedRatings(db *gorm.DB) ([]entity.RatingSummary, error)
}
