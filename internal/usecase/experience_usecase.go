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
	"doctor-directory/pkg/validator"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrExperienceNotFound = errors.New("experience not found")
)

type ExperienceUsecase interface {
	CreateExperience(ctx context.Context, doctorID int, req *dto.CreateExperienceRequest) (*dto.ExperienceResponse, error)
	UpdateExperience(ctx context.Context, id int, req *dto.UpdateExperienceRequest) (*dto.ExperienceResponse, error)
	DeleteExperience(ctx context.Context, id int) error
}

type experienceUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	validator      *validator.CustomValidator
	doctorRepo     repository.DoctorRepository
	experienceRepo repository.ExperienceRepository
	auditService   service.AuditService
}

func NewExperienceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	doctorRepo repository.DoctorRepository,
	experienceRepo repository.ExperienceRepository,
	auditService service.AuditService,
) ExperienceUsecase {
	return &experienceUsecase{
		db:             db,
		log:            log,
		validator:      validator,
		doctorRepo:     doctorRepo,
		experienceRepo: experienceRepo,
		auditService:   auditService,
	}
}

func (u *experienceUsecase) CreateExperience(ctx context.Context, doctorID int, req *dto.CreateExperienceRequest) (*dto.ExperienceResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	experience := &entity.Experience{
		DoctorID:     doctorID,
		Position:     strings.TrimSpace(req.Position),
		HospitalName: strings.TrimSpace(req.HospitalName),
		StartYear:    req.StartYear,
		EndYear:      req.EndYear,
		Description:  req.Description,
	}
	if !experience.YearsValid() {
		return nil, ErrInvalidExperienceYears
	}
	if res := u.validator.Check(experience); !res.OK() {
		return nil, res
	}

	if err := u.experienceRepo.Create(tx, experience); err != nil {
		u.log.Warnf("Failed to create experience: %+v", err)
		if isForeignKeyError(err, "doctor") {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}

	actor, _ := middleware.GetActorFromContext(ctx)
	if err := u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionExperienceCreate, "experience", strconv.Itoa(experience.ID), converter.ExperienceToResponse(experience)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ExperienceToResponse(experience), nil
}

func (u *experienceUsecase) UpdateExperience(ctx context.Context, id int, req *dto.UpdateExperienceRequest) (*dto.ExperienceResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	experience, err := u.experienceRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find experience: %+v", err)
		return nil, err
	}
	if experience == nil {
		return nil, ErrExperienceNotFound
	}

	oldValue := converter.ExperienceToResponse(experience)

	if req.Position != nil {
		experience.Position = strings.TrimSpace(*req.Position)
	}
	if req.HospitalName != nil {
		experience.HospitalName = strings.TrimSpace(*req.HospitalName)
	}
	if req.StartYear != nil {
		experience.StartYear = req.StartYear
	}
	if req.ClearEndYear {
		experience.EndYear = nil
	} else if req.EndYear != nil {
		experience.EndYear = req.EndYear
	}
	if req.Description != nil {
		experience.Description = *req.Description
	}
	if !experience.YearsValid() {
		return nil, ErrInvalidExperienceYears
	}
	if res := u.validator.Check(experience); !res.OK() {
		return nil, res
	}

	if err := u.experienceRepo.Update(tx, experience); err != nil {
		u.log.Warnf("Failed to update experience: %+v", err)
		return nil, err
	}

	newValue := converter.ExperienceToResponse(experience)
	actor, _ := middleware.GetActorFromContext(ctx)
	if err := u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionExperienceUpdate, "experience", strconv.Itoa(id), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}

func (u *experienceUsecase) DeleteExperience(ctx context.Context, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	experience, err := u.experienceRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find experience: %+v", err)
		return err
	}
	if experience == nil {
		return ErrExperienceNotFound
	}

	if _, err := u.experienceRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete experience: %+v", err)
		return err
	}

	actor, _ := middleware.GetActorFromContext(ctx)
	if err := u.auditService.LogDelete(ctx, tx, actor, entity.AuditActionExperienceDelete, "experience", strconv.Itoa(id), converter.ExperienceToResponse(experience)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
