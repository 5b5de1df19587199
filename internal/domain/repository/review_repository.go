package repository

import (
	"doctor-directory/internal/domain/entity"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(db *gorm.DB, review *entity.Review) error
	FindByID(db *gorm.DB, id int) (*entity.Review, error)
	FindAll(db *gorm.DB, filter *entity.ReviewFilter) ([]entity.Review, error)
	Delete(db *gorm.DB, id int) (int64, error)
	Count(db *gorm.DB) (int64, error)
	SummaryByDoctor(db *gorm.DB, doctorID int) (*entity.RatingSummary, error)
}
