package repository

import (
	"errors"

	"doctor-directory/internal/domain/entity"
	domainRepo "doctor-directory/internal/domain/repository"

	"gorm.io/gorm"
)

type experienceRepository struct{}

func NewExperienceRepository() domainRepo.ExperienceRepository {
	return &experienceRepository{}
}

func (r *experienceRepository) Create(db *gorm.DB, experience *entity.Experience) error {
	return db.Create(experience).Error
}

func (r *experienceRepository) FindByID(db *gorm.DB, id int) (*entity.Experience, error) {
	var experience entity.Experience
	err := db.Where("id = ?", id).First(&experience).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &experience, nil
}

func (r *experienceRepository) Update(db *gorm.DB, experience *entity.Experience) error {
	return db.Save(experience).Error
}

func (r *experienceRepository) Delete(db *gorm.DB, id int) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Experience{})
	return result.RowsAffected, result.Error
}
