package usecase

import (
	"context"
	"strings"

	"doctor-directory/internal/converter"
	"doctor-directory/internal/delivery/dto"
	"doctor-directory/internal/domain/entity"
	"doctor-directory/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DirectoryUsecase serves the read-only public pages other than home.
type DirectoryUsecase interface {
	GetDoctorPage(ctx context.Context, slug string) (*dto.DoctorResponse, error)
	ListDoctors(ctx context.Context) (*dto.DoctorListPage, error)
	GetHospitalPage(ctx context.Context, id int) (*dto.HospitalResponse, error)
	ListHospitals(ctx context.Context) (*dto.HospitalListPage, error)
	Search(ctx context.Context, query dto.SearchQuery) (*dto.SearchPage, error)
}

type directoryUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	doctorRepo    repository.DoctorRepository
	hospitalRepo  repository.HospitalRepository
	specialtyRepo repository.SpecialtyRepository
	reviewRepo    repository.ReviewRepository
	mediaURL      string
}

func NewDirectoryUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	hospitalRepo repository.HospitalRepository,
	specialtyRepo repository.SpecialtyRepository,
	reviewRepo repository.ReviewRepository,
	mediaURL string,
) DirectoryUsecase {
	return &directoryUsecase{
		db:            db,
		log:           log,
		doctorRepo:    doctorRepo,
		hospitalRepo:  hospitalRepo,
		specialtyRepo: specialtyRepo,
		reviewRepo:    reviewRepo,
		mediaURL:      mediaURL,
	}
}

func (u *directoryUsecase) GetDoctorPage(ctx context.Context, slug string) (*dto.DoctorResponse, error) {
	db := u.db.WithContext(ctx)

	doctor, err := u.doctorRepo.FindBySlug(db, slug)
	if err != nil {
		u.log.Warnf("Failed to find doctor by slug: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	summary, err := u.reviewRepo.SummaryByDoctor(db, doctor.ID)
	if err != nil {
		u.log.Warnf("Failed to summarize doctor reviews: %+v", err)
		return nil, err
	}

	return converter.WithRating(converter.DoctorToResponse(doctor, u.mediaURL), summary), nil
}

func (u *directoryUsecase) ListDoctors(ctx context.Context) (*dto.DoctorListPage, error) {
	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx), nil)
	if err != nil {
		u.log.Warnf("Failed to find all doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListPage{Doctors: converter.DoctorsToResponses(doctors, u.mediaURL)}, nil
}

func (u *directoryUsecase) GetHospitalPage(ctx context.Context, id int) (*dto.HospitalResponse, error) {
	hospital, err := u.hospitalRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find hospital: %+v", err)
		return nil, err
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}

	return converter.HospitalToResponse(hospital, u.mediaURL), nil
}

func (u *directoryUsecase) ListHospitals(ctx context.Context) (*dto.HospitalListPage, error) {
	hospitals, err := u.hospitalRepo.FindAll(u.db.WithContext(ctx), nil)
	if err != nil {
		u.log.Warnf("Failed to find all hospitals: %+v", err)
		return nil, err
	}

	return &dto.HospitalListPage{Hospitals: converter.HospitalsToResponses(hospitals, u.mediaURL)}, nil
}

// Search always loads the specialty and location choices for the form; it
// only queries doctors when at least one criterion is given.
func (u *directoryUsecase) Search(ctx context.Context, query dto.SearchQuery) (*dto.SearchPage, error) {
	db := u.db.WithContext(ctx)

	query = dto.SearchQuery{
		Q:         strings.TrimSpace(query.Q),
		Specialty: strings.TrimSpace(query.Specialty),
		Location:  strings.TrimSpace(query.Location),
	}

	specialties, err := u.specialtyRepo.FindAll(db, "")
	if err != nil {
		u.log.Warnf("Failed to find specialties: %+v", err)
		return nil, err
	}
	locations, err := u.doctorRepo.FindDistinctLocations(db)
	if err != nil {
		u.log.Warnf("Failed to find doctor locations: %+v", err)
		return nil, err
	}

	page := &dto.SearchPage{
		Query:       query,
		Specialties: converter.SpecialtiesToResponses(specialties),
		Locations:   locations,
		Results:     []dto.DoctorResponse{},
	}
	if query.IsEmpty() {
		return page, nil
	}

	doctors, err := u.doctorRepo.FindAll(db, &entity.DoctorFilter{
		Search:        query.Q,
		SpecialtySlug: query.Specialty,
		Location:      query.Location,
	})
	if err != nil {
		u.log.Warnf("Failed to search doctors: %+v", err)
		return nil, err
	}

	page.Searched = true
	page.Results = converter.DoctorsToResponses(doctors, u.mediaURL)
	return page, nil
}
