package usecase

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"doctor-directory/internal/converter"
	"doctor-directory/internal/delivery/dto"
	"doctor-directory/internal/delivery/http/middleware"
	"doctor-directory/internal/domain/entity"
	"doctor-directory/internal/domain/repository"
	"doctor-directory/internal/infrastructure/storage"
	"doctor-directory/internal/service"
	"doctor-directory/pkg/slug"
	"doctor-directory/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound         = errors.New("doctor not found")
	ErrDoctorSlugTaken        = errors.New("doctor slug already taken")
	ErrInvalidExperienceYears = errors.New("end year precedes start year")
	ErrUnknownSpecialty       = errors.New("one or more specialties do not exist")
	ErrDoctorHospitalNotFound = errors.New("hospital for doctor not found")
)

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, id int) (*dto.DoctorResponse, error)
	GetAllDoctors(ctx context.Context, filter *entity.DoctorFilter) (*dto.DoctorListResponse, error)
	UpdateDoctor(ctx context.Context, id int, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	SetProfilePicture(ctx context.Context, id int, picture io.Reader) (*dto.DoctorResponse, error)
	DeleteDoctor(ctx context.Context, id int) error
}

type doctorUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	validator     *validator.CustomValidator
	doctorRepo    repository.DoctorRepository
	hospitalRepo  repository.HospitalRepository
	specialtyRepo repository.SpecialtyRepository
	reviewRepo    repository.ReviewRepository
	media         storage.MediaStorage
	mediaURL      string
	auditService  service.AuditService
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	doctorRepo repository.DoctorRepository,
	hospitalRepo repository.HospitalRepository,
	specialtyRepo repository.SpecialtyRepository,
	reviewRepo repository.ReviewRepository,
	media storage.MediaStorage,
	mediaURL string,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		db:            db,
		log:           log,
		validator:     validator,
		doctorRepo:    doctorRepo,
		hospitalRepo:  hospitalRepo,
		specialtyRepo: specialtyRepo,
		reviewRepo:    reviewRepo,
		media:         media,
		mediaURL:      mediaURL,
		auditService:  auditService,
	}
}

// CreateDoctor inserts the doctor and then assigns its slug, slugify(name)-id.
// Both writes share one transaction so a doctor is never visible without its
// final slug.
func (u *doctorUsecase) CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor := &entity.Doctor{
		Name:            strings.TrimSpace(req.Name),
		Location:        trimOptional(req.Location),
		Designation:     strings.TrimSpace(req.Designation),
		Qualifications:  strings.TrimSpace(req.Qualifications),
		ExperienceYears: req.ExperienceYears,
		About:           req.About,
		IsFeatured:      req.IsFeatured,
		HospitalID:      req.HospitalID,
		// Placeholder until the id is known; keeps the unique index satisfied
		Slug: "pending-" + uuid.NewString(),
	}

	if err := u.checkHospital(tx, doctor.HospitalID); err != nil {
		return nil, err
	}

	specialties, err := u.loadSpecialties(tx, req.SpecialtyIDs)
	if err != nil {
		return nil, err
	}
	doctor.Specialties = specialties

	for _, exp := range req.Experiences {
		experience := entity.Experience{
			Position:     strings.TrimSpace(exp.Position),
			HospitalName: strings.TrimSpace(exp.HospitalName),
			StartYear:    exp.StartYear,
			EndYear:      exp.EndYear,
			Description:  exp.Description,
		}
		if !experience.YearsValid() {
			return nil, ErrInvalidExperienceYears
		}
		doctor.Experiences = append(doctor.Experiences, experience)
	}

	if res := u.validator.Check(doctor); !res.OK() {
		return nil, res
	}

	if err := u.doctorRepo.Create(tx, doctor); err != nil {
		u.log.Warnf("Failed to create doctor: %+v", err)
		if isForeignKeyError(err, "hospital") {
			return nil, ErrDoctorHospitalNotFound
		}
		return nil, err
	}

	doctor.Slug = slug.WithID(doctor.Name, doctor.ID)
	if err := u.doctorRepo.UpdateSlug(tx, doctor.ID, doctor.Slug); err != nil {
		u.log.Warnf("Failed to update doctor slug: %+v", err)
		if isDuplicateKeyError(err, "doctors_slug") {
			return nil, ErrDoctorSlugTaken
		}
		return nil, err
	}

	actor, _ := middleware.GetActorFromContext(ctx)
	if err := u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionDoctorCreate, "doctor", strconv.Itoa(doctor.ID), converter.DoctorToResponse(doctor, u.mediaURL)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return u.GetDoctor(ctx, doctor.ID)
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, id int) (*dto.DoctorResponse, error) {
	db := u.db.WithContext(ctx)

	doctor, err := u.doctorRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	summary, err := u.reviewRepo.SummaryByDoctor(db, id)
	if err != nil {
		u.log.Warnf("Failed to summarize doctor reviews: %+v", err)
		return nil, err
	}

	return converter.WithRating(converter.DoctorToResponse(doctor, u.mediaURL), summary), nil
}

func (u *doctorUsecase) GetAllDoctors(ctx context.Context, filter *entity.DoctorFilter) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find all doctors: %+v", err)
		return nil, err
	}

	responses := converter.DoctorsToResponses(doctors, u.mediaURL)

	return &dto.DoctorListResponse{
		Doctors: responses,
		Total:   len(responses),
	}, nil
}

// UpdateDoctor applies the present fields. Renaming a doctor keeps the slug
// assigned at creation; only an empty slug is regenerated.
func (u *doctorUsecase) UpdateDoctor(ctx context.Context, id int, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	oldValue := converter.DoctorToResponse(doctor, u.mediaURL)

	if req.Name != nil {
		doctor.Name = strings.TrimSpace(*req.Name)
	}
	if req.Location != nil {
		doctor.Location = trimOptional(req.Location)
	}
	if req.Designation != nil {
		doctor.Designation = strings.TrimSpace(*req.Designation)
	}
	if req.Qualifications != nil {
		doctor.Qualifications = strings.TrimSpace(*req.Qualifications)
	}
	if req.ExperienceYears != nil {
		doctor.ExperienceYears = req.ExperienceYears
	}
	if req.About != nil {
		doctor.About = *req.About
	}
	if req.IsFeatured != nil {
		doctor.IsFeatured = *req.IsFeatured
	}
	switch {
	case req.ClearHospital:
		doctor.HospitalID = nil
		doctor.Hospital = nil
	case req.HospitalID != nil:
		if err := u.checkHospital(tx, req.HospitalID); err != nil {
			return nil, err
		}
		doctor.HospitalID = req.HospitalID
		doctor.Hospital = nil
	}
	if doctor.Slug == "" {
		doctor.Slug = slug.WithID(doctor.Name, doctor.ID)
	}

	if res := u.validator.Check(doctor); !res.OK() {
		return nil, res
	}

	if err := u.doctorRepo.Update(tx, doctor); err != nil {
		u.log.Warnf("Failed to update doctor: %+v", err)
		if isForeignKeyError(err, "hospital") {
			return nil, ErrDoctorHospitalNotFound
		}
		if isDuplicateKeyError(err, "doctors_slug") {
			return nil, ErrDoctorSlugTaken
		}
		return nil, err
	}

	if req.SpecialtyIDs != nil {
		specialties, err := u.loadSpecialties(tx, *req.SpecialtyIDs)
		if err != nil {
			return nil, err
		}
		if err := u.doctorRepo.ReplaceSpecialties(tx, doctor, specialties); err != nil {
			u.log.Warnf("Failed to replace doctor specialties: %+v", err)
			return nil, err
		}
		doctor.Specialties = specialties
	}

	actor, _ := middleware.GetActorFromContext(ctx)
	if err := u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionDoctorUpdate, "doctor", strconv.Itoa(id), oldValue, converter.DoctorToResponse(doctor, u.mediaURL)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return u.GetDoctor(ctx, id)
}

func (u *doctorUsecase) SetProfilePicture(ctx context.Context, id int, picture io.Reader) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	path, err := u.media.SaveImage(ctx, entity.DoctorPictureDir, picture)
	if err != nil {
		u.log.Warnf("Failed to save profile picture: %+v", err)
		return nil, err
	}

	oldValue := converter.DoctorToResponse(doctor, u.mediaURL)
	oldPicture := doctor.ProfilePicture
	doctor.ProfilePicture = path

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.doctorRepo.Update(tx, doctor); err != nil {
		u.log.Warnf("Failed to update profile picture: %+v", err)
		u.discard(ctx, path)
		return nil, err
	}

	actor, _ := middleware.GetActorFromContext(ctx)
	if err := u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionDoctorUpdate, "doctor", strconv.Itoa(id), oldValue, converter.DoctorToResponse(doctor, u.mediaURL)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		u.discard(ctx, path)
		return nil, err
	}

	u.discard(ctx, oldPicture)
	return u.GetDoctor(ctx, id)
}

// DeleteDoctor removes the doctor together with its experiences and reviews.
func (u *doctorUsecase) DeleteDoctor(ctx context.Context, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	oldValue := converter.DoctorToResponse(doctor, u.mediaURL)

	if _, err := u.doctorRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete doctor: %+v", err)
		return err
	}

	actor, _ := middleware.GetActorFromContext(ctx)
	if err := u.auditService.LogDelete(ctx, tx, actor, entity.AuditActionDoctorDelete, "doctor", strconv.Itoa(id), oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.discard(ctx, doctor.ProfilePicture)
	return nil
}

func (u *doctorUsecase) checkHospital(db *gorm.DB, hospitalID *int) error {
	if hospitalID == nil {
		return nil
	}
	hospital, err := u.hospitalRepo.FindByID(db, *hospitalID)
	if err != nil {
		u.log.Warnf("Failed to find hospital: %+v", err)
		return err
	}
	if hospital == nil {
		return ErrDoctorHospitalNotFound
	}
	return nil
}

func (u *doctorUsecase) loadSpecialties(db *gorm.DB, ids []int) ([]entity.Specialty, error) {
	ids = uniqueInts(ids)
	if len(ids) == 0 {
		return []entity.Specialty{}, nil
	}
	specialties, err := u.specialtyRepo.FindByIDs(db, ids)
	if err != nil {
		u.log.Warnf("Failed to find specialties: %+v", err)
		return nil, err
	}
	if len(specialties) != len(ids) {
		return nil, ErrUnknownSpecialty
	}
	return specialties, nil
}

func (u *doctorUsecase) discard(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := u.media.Delete(ctx, path); err != nil {
		u.log.Warnf("Failed to delete media file %s: %+v", path, err)
	}
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func uniqueInts(in []int) []int {
	seen := make(map[int]struct{}, len(in))
	out := make([]int, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
