package repository

import (
	"errors"

	"doctor-directory/internal/domain/entity"
	domainRepo "doctor-directory/internal/domain/repository"

	"gorm.io/gorm"
)

type reviewRepository struct{}

func NewReviewRepository() domainRepo.ReviewRepository {
	return &reviewRepository{}
}

func (r *reviewRepository) Create(db *gorm.DB, review *entity.Review) error {
	return db.Omit("Doctor").Create(review).Error
}

func (r *reviewRepository) FindByID(db *gorm.DB, id int) (*entity.Review, error) {
	var review entity.Review
	err := db.Preload("Doctor").Where("id = ?", id).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindAll(db *gorm.DB, filter *entity.ReviewFilter) ([]entity.Review, error) {
	reviews := []entity.Review{}
	query := db.Model(&entity.Review{})
	if filter != nil {
		if filter.DoctorID != 0 {
			query = query.Where("reviews.doctor_id = ?", filter.DoctorID)
		}
		if filter.Rating != nil {
			query = query.Where("reviews.rating = ?", *filter.Rating)
		}
		if filter.CreatedFrom != nil {
			query = query.Where("reviews.created_at >= ?", *filter.CreatedFrom)
		}
		if filter.CreatedTo != nil {
			query = query.Where("reviews.created_at < ?", *filter.CreatedTo)
		}
		if filter.Search != "" {
			like := containsPattern(filter.Search)
			query = query.
				Joins("JOIN doctors ON doctors.id = reviews.doctor_id").
				Where("(doctors.name ILIKE ? OR reviews.patient_name ILIKE ? OR reviews.comment ILIKE ?)", like, like, like)
		}
	}
	err := query.Preload("Doctor").Order("reviews.created_at DESC, reviews.id DESC").Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) Delete(db *gorm.DB, id int) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Review{})
	return result.RowsAffected, result.Error
}

func (r *reviewRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Review{}).Count(&count).Error
	return count, err
}

func (r *reviewRepository) SummaryByDoctor(db *gorm.DB, doctorID int) (*entity.RatingSummary, error) {
	summary := entity.RatingSummary{DoctorID: doctorID}
	err := db.Model(&entity.Review{}).
		Select("AVG(rating) AS avg_rating, COUNT(id) AS review_count").
		Where("doctor_id = ?", doctorID).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	summary.DoctorID = doctorID
	return &summary, nil
}
