package repository

import (
	"errors"

	"doctor-directory/internal/domain/entity"
	domainRepo "doctor-directory/internal/domain/repository"

	"gorm.io/gorm"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

// Create inserts the doctor together with any inline experiences and reviews,
// and links its specialties. Specialty and hospital rows must already exist;
// they are referenced, never upserted.
func (r *doctorRepository) Create(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Omit("Specialties.*", "Hospital").Create(doctor).Error
}

func (r *doctorRepository) UpdateSlug(db *gorm.DB, id int, slug string) error {
	return db.Model(&entity.Doctor{}).Where("id = ?", id).Update("slug", slug).Error
}

func (r *doctorRepository) FindByID(db *gorm.DB, id int) (*entity.Doctor, error) {
	return r.findOne(db.Where("doctors.id = ?", id))
}

func (r *doctorRepository) FindBySlug(db *gorm.DB, slug string) (*entity.Doctor, error) {
	return r.findOne(db.Where("doctors.slug = ?", slug))
}

func (r *doctorRepository) findOne(query *gorm.DB) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := query.
		Preload("Hospital").
		Preload("Specialties", func(db *gorm.DB) *gorm.DB { return db.Order("specialties.name ASC") }).
		Preload("Experiences", func(db *gorm.DB) *gorm.DB {
			return db.Order("end_year IS NULL DESC, end_year DESC, start_year DESC, id DESC")
		}).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC, id DESC") }).
		First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindByIDs(db *gorm.DB, ids []int) ([]entity.Doctor, error) {
	doctors := []entity.Doctor{}
	if len(ids) == 0 {
		return doctors, nil
	}
	err := db.
		Preload("Hospital").
		Preload("Specialties", func(db *gorm.DB) *gorm.DB { return db.Order("specialties.name ASC") }).
		Where("id IN ?", ids).
		Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) FindAll(db *gorm.DB, filter *entity.DoctorFilter) ([]entity.Doctor, error) {
	doctors := []entity.Doctor{}
	query := db.Model(&entity.Doctor{})

	if filter != nil {
		if filter.Search != "" {
			like := containsPattern(filter.Search)
			bySpecialtyName := db.Table("doctor_specialties").
				Select("doctor_specialties.doctor_id").
				Joins("JOIN specialties ON specialties.id = doctor_specialties.specialty_id").
				Where("specialties.name ILIKE ?", like)
			query = query.Where(
				"(doctors.name ILIKE ? OR doctors.designation ILIKE ? OR doctors.id IN (?))",
				like, like, bySpecialtyName,
			)
		}
		if filter.SpecialtyID != 0 {
			query = query.Where("doctors.id IN (?)", db.Table("doctor_specialties").
				Select("doctor_id").
				Where("specialty_id = ?", filter.SpecialtyID))
		}
		if filter.SpecialtySlug != "" {
			query = query.Where("doctors.id IN (?)", db.Table("doctor_specialties").
				Select("doctor_specialties.doctor_id").
				Joins("JOIN specialties ON specialties.id = doctor_specialties.specialty_id").
				Where("specialties.slug = ?", filter.SpecialtySlug))
		}
		if filter.HospitalID != 0 {
			query = query.Where("doctors.hospital_id = ?", filter.HospitalID)
		}
		if filter.Location != "" {
			query = query.Where("doctors.location = ?", filter.Location)
		}
		if filter.FeaturedOnly {
			query = query.Where("doctors.is_featured = ?", true)
		}
	}

	err := query.
		Preload("Hospital").
		Preload("Specialties", func(db *gorm.DB) *gorm.DB { return db.Order("specialties.name ASC") }).
		Order("doctors.name ASC, doctors.id ASC").
		Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) Update(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Omit("Specialties", "Hospital", "Experiences", "Reviews").Save(doctor).Error
}

func (r *doctorRepository) ReplaceSpecialties(db *gorm.DB, doctor *entity.Doctor, specialties []entity.Specialty) error {
	association := db.Model(doctor).Omit("Specialties.*").Association("Specialties")
	if len(specialties) == 0 {
		return association.Clear()
	}
	return association.Replace(specialties)
}

// Delete removes the doctor. Experiences, reviews and specialty links go with
// it through ON DELETE CASCADE.
func (r *doctorRepository) Delete(db *gorm.DB, id int) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Doctor{})
	return result.RowsAffected, result.Error
}

func (r *doctorRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Doctor{}).Count(&count).Error
	return count, err
}

func (r *doctorRepository) CountDistinctLocations(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Doctor{}).
		Where("location IS NOT NULL AND location <> ''").
		Distinct("location").
		Count(&count).Error
	return count, err
}

func (r *doctorRepository) FindDistinctLocations(db *gorm.DB) ([]string, error) {
	locations := []string{}
	err := db.Model(&entity.Doctor{}).
		Where("location IS NOT NULL AND location <> ''").
		Distinct().
		Order("location ASC").
		Pluck("location", &locations).Error
	if err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *doctorRepository) FindFeaturedRatings(db *gorm.DB) ([]entity.RatingSummary, error) {
	summaries := []entity.RatingSummary{}
	err := db.Table("doctors").
		Select("doctors.id AS doctor_id, AVG(reviews.rating) AS avg_rating, COUNT(reviews.id) AS review_count").
		Joins("LEFT JOIN reviews ON reviews.doctor_id = doctors.id").
		Where("doctors.is_featured = ?", true).
		Group("doctors.id").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}
