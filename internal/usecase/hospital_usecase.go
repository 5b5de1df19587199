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
	"doctor-directory/pkg/validator"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrHospitalNotFound = errors.New("hospital not found")
)

type HospitalUsecase interface {
	CreateHospital(ctx context.Context, req *dto.CreateHospitalRequest) (*dto.HospitalResponse, error)
	GetHospital(ctx context.Context, id int) (*dto.HospitalResponse, error)
	GetAllHospitals(ctx context.Context, filter *entity.HospitalFilter) (*dto.HospitalListResponse, error)
	UpdateHospital(ctx context.Context, id int, req *dto.UpdateHospitalRequest) (*dto.HospitalResponse, error)
	SetHospitalImage(ctx context.Context, id int, image io.Reader) (*dto.HospitalResponse, error)
	DeleteHospital(ctx context.Context, id int) error
}

type hospitalUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	validator    *validator.CustomValidator
	hospitalRepo repository.HospitalRepository
	media        storage.MediaStorage
	mediaURL     string
	auditService service.AuditService
}

func NewHospitalUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	hospitalRepo repository.HospitalRepository,
	media storage.MediaStorage,
	mediaURL string,
	auditService service.AuditService,
) HospitalUsecase {
	return &hospitalUsecase{
		db:           db,
		log:          log,
		validator:    validator,
		hospitalRepo: hospitalRepo,
		media:        media,
		mediaURL:     mediaURL,
		auditService: auditService,
	}
}

func (u *hospitalUsecase) CreateHospital(ctx context.Context, req *dto.CreateHospitalRequest) (*dto.HospitalResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	hospital := &entity.Hospital{
		Name:           strings.TrimSpace(req.Name),
		Location:       strings.TrimSpace(req.Location),
		Address:        req.Address,
		ContactNumbers: req.ContactNumbers,
		Diagnosis:      req.Diagnosis,
		Facilities:     req.Facilities,
	}
	if res := u.validator.Check(hospital); !res.OK() {
		return nil, res
	}

	if err := u.hospitalRepo.Create(tx, hospital); err != nil {
		u.log.Warnf("Failed to create hospital: %+v", err)
		return nil, err
	}

	actor, _ := middleware.GetActorFromContext(ctx)
	if err := u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionHospitalCreate, "hospital", strconv.Itoa(hospital.ID), converter.HospitalToResponse(hospital, u.mediaURL)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.HospitalToResponse(hospital, u.mediaURL), nil
}

func (u *hospitalUsecase) GetHospital(ctx context.Context, id int) (*dto.HospitalResponse, error) {
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

func (u *hospitalUsecase) GetAllHospitals(ctx context.Context, filter *entity.HospitalFilter) (*dto.HospitalListResponse, error) {
	hospitals, err := u.hospitalRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find all hospitals: %+v", err)
		return nil, err
	}

	responses := converter.HospitalsToResponses(hospitals, u.mediaURL)

	return &dto.HospitalListResponse{
		Hospitals: responses,
		Total:     len(responses),
	}, nil
}

func (u *hospitalUsecase) UpdateHospital(ctx context.Context, id int, req *dto.UpdateHospitalRequest) (*dto.HospitalResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	hospital, err := u.hospitalRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find hospital: %+v", err)
		return nil, err
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}

	oldValue := converter.HospitalToResponse(hospital, u.mediaURL)

	if req.Name != nil {
		hospital.Name = strings.TrimSpace(*req.Name)
	}
	if req.Location != nil {
		hospital.Location = strings.TrimSpace(*req.Location)
	}
	if req.Address != nil {
		hospital.Address = *req.Address
	}
	if req.ContactNumbers != nil {
		hospital.ContactNumbers = *req.ContactNumbers
	}
	if req.Diagnosis != nil {
		hospital.Diagnosis = *req.Diagnosis
	}
	if req.Facilities != nil {
		hospital.Facilities = *req.Facilities
	}
	if res := u.validator.Check(hospital); !res.OK() {
		return nil, res
	}

	if err := u.hospitalRepo.Update(tx, hospital); err != nil {
		u.log.Warnf("Failed to update hospital: %+v", err)
		return nil, err
	}

	newValue := converter.HospitalToResponse(hospital, u.mediaURL)
	actor, _ := middleware.GetActorFromContext(ctx)
	if err := u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionHospitalUpdate, "hospital", strconv.Itoa(id), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}

// SetHospitalImage stores a new image and replaces the previous one. The old
// file is removed only after the row points at the new one.
func (u *hospitalUsecase) SetHospitalImage(ctx context.Context, id int, image io.Reader) (*dto.HospitalResponse, error) {
	hospital, err := u.hospitalRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find hospital: %+v", err)
		return nil, err
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}

	path, err := u.media.SaveImage(ctx, entity.HospitalImageDir, image)
	if err != nil {
		u.log.Warnf("Failed to save hospital image: %+v", err)
		return nil, err
	}

	oldValue := converter.HospitalToResponse(hospital, u.mediaURL)
	oldImage := hospital.Image
	hospital.Image = path

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.hospitalRepo.Update(tx, hospital); err != nil {
		u.log.Warnf("Failed to update hospital image: %+v", err)
		u.discard(ctx, path)
		return nil, err
	}

	newValue := converter.HospitalToResponse(hospital, u.mediaURL)
	actor, _ := middleware.GetActorFromContext(ctx)
	if err := u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionHospitalUpdate, "hospital", strconv.Itoa(id), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		u.discard(ctx, path)
		return nil, err
	}

	u.discard(ctx, oldImage)
	return newValue, nil
}

func (u *hospitalUsecase) DeleteHospital(ctx context.Context, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	hospital, err := u.hospitalRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find hospital: %+v", err)
		return err
	}
	if hospital == nil {
		return ErrHospitalNotFound
	}

	// Doctors stay; their hospital_id is cleared by ON DELETE SET NULL
	if _, err := u.hospitalRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete hospital: %+v", err)
		return err
	}

	actor, _ := middleware.GetActorFromContext(ctx)
	if err := u.auditService.LogDelete(ctx, tx, actor, entity.AuditActionHospitalDelete, "hospital", strconv.Itoa(id), converter.HospitalToSummary(hospital)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.discard(ctx, hospital.Image)
	return nil
}

func (u *hospitalUsecase) discard(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := u.media.Delete(ctx, path); err != nil {
		u.log.Warnf("Failed to delete media file %s: %+v", path, err)
	}
}
