package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"doctor-directory/internal/converter"
	"doctor-directory/internal/delivery/dto"
	"doctor-directory/internal/delivery/http/middleware"
	"doctor-directory/internal/domain/entity"
	"doctor-directory/internal/domain/repository"
	"doctor-directory/internal/service"
	"doctor-directory/pkg/slug"
	"doctor-directory/pkg/validator"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrSpecialtyNotFound  = errors.New("specialty not found")
	ErrSpecialtyExists    = errors.New("specialty name already exists")
	ErrSpecialtySlugTaken = errors.New("specialty slug already taken")
)

type SpecialtyUsecase interface {
	CreateSpecialty(ctx context.Context, req *dto.CreateSpecialtyRequest) (*dto.SpecialtyResponse, error)
	GetSpecialty(ctx context.Context, id int) (*dto.SpecialtyResponse, error)
	GetAllSpecialties(ctx context.Context, search string) (*dto.SpecialtyListResponse, error)
	UpdateSpecialty(ctx context.Context, id int, req *dto.UpdateSpecialtyRequest) (*dto.SpecialtyResponse, error)
	DeleteSpecialty(ctx context.Context, id int) error
}

type specialtyUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	validator     *validator.CustomValidator
	specialtyRepo repository.SpecialtyRepository
	auditService  service.AuditService
}

func NewSpecialtyUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	specialtyRepo repository.SpecialtyRepository,
	auditService service.AuditService,
) SpecialtyUsecase {
	return &specialtyUsecase{
		db:            db,
		log:           log,
		validator:     validator,
		specialtyRepo: specialtyRepo,
		auditService:  auditService,
	}
}

func (u *specialtyUsecase) CreateSpecialty(ctx context.Context, req *dto.CreateSpecialtyRequest) (*dto.SpecialtyResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	specialty := &entity.Specialty{
		Name: strings.TrimSpace(req.Name),
		Slug: strings.TrimSpace(req.Slug),
	}

	// Slug is generated once, and only when none was supplied
	if specialty.Slug == "" {
		generated, err := slug.Unique(ctx, specialty.Name, u.slugExists(tx))
		if err != nil {
			u.log.Warnf("Failed to generate specialty slug: %+v", err)
			return nil, err
		}
		specialty.Slug = generated
	}

	if res := u.validator.Check(specialty); !res.OK() {
		return nil, res
	}

	if err := u.specialtyRepo.Create(tx, specialty); err != nil {
		u.log.Warnf("Failed to create specialty: %+v", err)
		return nil, mapSpecialtyWriteError(err)
	}

	actor, _ := middleware.GetActorFromContext(ctx)
	if err := u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionSpecialtyCreate, "specialty", strconv.Itoa(specialty.ID), converter.SpecialtyToResponse(specialty)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, mapSpecialtyWriteError(err)
	}

	return converter.SpecialtyToResponse(specialty), nil
}

func (u *specialtyUsecase) GetSpecialty(ctx context.Context, id int) (*dto.SpecialtyResponse, error) {
	specialty, err := u.specialtyRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find specialty: %+v", err)
		return nil, err
	}
	if specialty == nil {
		return nil, ErrSpecialtyNotFound
	}

	return converter.SpecialtyToResponse(specialty), nil
}

func (u *specialtyUsecase) GetAllSpecialties(ctx context.Context, search string) (*dto.SpecialtyListResponse, error) {
	specialties, err := u.specialtyRepo.FindAll(u.db.WithContext(ctx), strings.TrimSpace(search))
	if err != nil {
		u.log.Warnf("Failed to find all specialties: %+v", err)
		return nil, err
	}

	responses := converter.SpecialtiesToResponses(specialties)

	return &dto.SpecialtyListResponse{
		Specialties: responses,
		Total:       len(responses),
	}, nil
}

// UpdateSpecialty renames a specialty without touching its slug; the slug
// only changes when one is supplied explicitly.
func (u *specialtyUsecase) UpdateSpecialty(ctx context.Context, id int, req *dto.UpdateSpecialtyRequest) (*dto.SpecialtyResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	specialty, err := u.specialtyRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find specialty: %+v", err)
		return nil, err
	}
	if specialty == nil {
		return nil, ErrSpecialtyNotFound
	}

	oldValue := converter.SpecialtyToResponse(specialty)

	if name := strings.TrimSpace(req.Name); name != "" {
		specialty.Name = name
	}
	if s := strings.TrimSpace(req.Slug); s != "" {
		specialty.Slug = s
	}
	if specialty.Slug == "" {
		generated, err := slug.Unique(ctx, specialty.Name, u.slugExists(tx))
		if err != nil {
			u.log.Warnf("Failed to generate specialty slug: %+v", err)
			return nil, err
		}
		specialty.Slug = generated
	}

	if res := u.validator.Check(specialty); !res.OK() {
		return nil, res
	}

	if err := u.specialtyRepo.Update(tx, specialty); err != nil {
		u.log.Warnf("Failed to update specialty: %+v", err)
		return nil, mapSpecialtyWriteError(err)
	}

	actor, _ := middleware.GetActorFromContext(ctx)
	if err := u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionSpecialtyUpdate, "specialty", strconv.Itoa(id), oldValue, converter.SpecialtyToResponse(specialty)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, mapSpecialtyWriteError(err)
	}

	return converter.SpecialtyToResponse(specialty), nil
}

func (u *specialtyUsecase) DeleteSpecialty(ctx context.Context, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	specialty, err := u.specialtyRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find specialty: %+v", err)
		return err
	}
	if specialty == nil {
		return ErrSpecialtyNotFound
	}

	if _, err := u.specialtyRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete specialty: %+v", err)
		return err
	}

	actor, _ := middleware.GetActorFromContext(ctx)
	if err := u.auditService.LogDelete(ctx, tx, actor, entity.AuditActionSpecialtyDelete, "specialty", strconv.Itoa(id), converter.SpecialtyToResponse(specialty)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *specialtyUsecase) slugExists(tx *gorm.DB) slug.ExistsFunc {
	return func(ctx context.Context, s string) (bool, error) {
		return u.specialtyRepo.SlugExists(tx.WithContext(ctx), s)
	}
}

// mapSpecialtyWriteError turns unique violations, including ones raised by a
// concurrent insert that won the race, into sentinel errors.
func mapSpecialtyWriteError(err error) error {
	switch {
	case isDuplicateKeyError(err, "specialties_name"):
		return ErrSpecialtyExists
	case isDuplicateKeyError(err, "specialties_slug"):
		return ErrSpecialtySlugTaken
	default:
		return err
	}
}
