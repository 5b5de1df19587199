package repository

import (
	"doctor-directory/internal/domain/entity"

	"gorm.io/gorm"
)

type ExperienceRepository interface {
	Create(db *gorm.DB, experience *entity.Experience) error
	FindByID(db *gorm.DB, id int) (*entity.Experience, error)
	Update(db *gorm.DB, experience *entity.Experience) error
	Delete(db *gorm.DB, id int) (int64, error)
}
