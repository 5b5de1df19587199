package repository

import (
	"doctor-directory/internal/domain/entity"

	"gorm.io/gorm"
)

type HospitalRepository interface {
	Create(db *gorm.DB, hospital *entity.Hospital) error
	FindByID(db *gorm.DB, id int) (*entity.Hospital, error)
	FindAll(db *gorm.DB, filter *entity.HospitalFilter) ([]entity.Hospital, error)
	FindLatest(db *gorm.DB, limit int) ([]entity.Hospital, error)
	Count(db *gorm.DB) (int64, error)
	Update(db *gorm.DB, hospital *entity.Hospital) error
	Delete(db *gorm.DB, id int) (int64, error)
}
